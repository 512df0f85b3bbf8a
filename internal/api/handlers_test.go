package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beyondborders/internal/booking"
	"beyondborders/internal/config"
	"beyondborders/internal/database"
	"beyondborders/internal/events"
	"beyondborders/internal/models"
	"beyondborders/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tokens seeded into the test session store.
const (
	tokenCustomer  = "tok-cust1"
	tokenCustomer2 = "tok-cust2"
	tokenAdmin     = "tok-admin"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.UpsertUser(ctx, &models.User{ID: "cust1", Email: "alice@example.com", Name: "Alice", Role: models.RoleCustomer}))
	require.NoError(t, db.UpsertUser(ctx, &models.User{ID: "cust2", Email: "bob@example.com", Name: "Bob", Role: models.RoleCustomer}))
	require.NoError(t, db.UpsertUser(ctx, &models.User{ID: "admin1", Email: "root@example.com", Name: "Root", Role: models.RoleAdmin}))
	require.NoError(t, db.CreateService(ctx, &models.Service{ID: "svc1", Name: "Safari Adventure"}))

	sessions := session.NewMemoryStore(time.Hour)
	require.NoError(t, sessions.Put(ctx, tokenCustomer, "cust1"))
	require.NoError(t, sessions.Put(ctx, tokenCustomer2, "cust2"))
	require.NoError(t, sessions.Put(ctx, tokenAdmin, "admin1"))

	svc := booking.NewService(db, events.NewEventBus(), &logger)
	resolver := session.NewResolver(sessions, db, &logger)

	cfg := config.Config{}
	srv := NewServer(cfg, svc, resolver, &logger)
	return srv.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func createBookingRequest() map[string]any {
	return map[string]any{
		"serviceId": "svc1",
		"startDate": "2025-07-01",
		"endDate":   "2025-07-05",
		"groupSize": 2,
	}
}

func createBooking(t *testing.T, handler http.Handler, token string) string {
	t.Helper()
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/bookings", token, createBookingRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	id := body["booking"].(map[string]any)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthz(t *testing.T) {
	handler := setupTestServer(t)
	rec := doRequest(t, handler, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListServicesPublic(t *testing.T) {
	handler := setupTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["services"], 1)
}

func TestAuthenticationRequired(t *testing.T) {
	handler := setupTestServer(t)

	for _, token := range []string{"", "bogus"} {
		rec := doRequest(t, handler, http.MethodGet, "/api/v1/bookings", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized, please login", decodeBody(t, rec)["error"])
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	handler := setupTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/bookings", tokenCustomer, createBookingRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	created := body["booking"].(map[string]any)
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, "cust1", created["ownerId"])
}

func TestCreateBookingBadRequests(t *testing.T) {
	handler := setupTestServer(t)

	// Unknown fields are rejected at the decoder.
	req := createBookingRequest()
	req["surprise"] = true
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/bookings", tokenCustomer, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = createBookingRequest()
	req["groupSize"] = 0
	rec = doRequest(t, handler, http.MethodPost, "/api/v1/bookings", tokenCustomer, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = createBookingRequest()
	req["bookingForSomeoneElse"] = true
	rec = doRequest(t, handler, http.MethodPost, "/api/v1/bookings", tokenCustomer, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "guest")
}

func TestGetBookingVisibility(t *testing.T) {
	handler := setupTestServer(t)
	id := createBooking(t, handler, tokenCustomer)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/bookings/"+id, tokenCustomer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	perms := body["permissions"].(map[string]any)
	assert.Equal(t, true, perms["canPay"])
	assert.Equal(t, false, perms["canEdit"])
	assert.NotContains(t, body["booking"], "customer")

	// Another customer gets 404, not 403.
	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings/"+id, tokenCustomer2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Admins see the owner block.
	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings/"+id, tokenAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	customer := body["booking"].(map[string]any)["customer"].(map[string]any)
	assert.Equal(t, "cust1", customer["id"])
	assert.Equal(t, "alice@example.com", customer["email"])
}

func TestListBookingsEndpoint(t *testing.T) {
	handler := setupTestServer(t)
	createBooking(t, handler, tokenCustomer)
	createBooking(t, handler, tokenCustomer2)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/bookings", tokenCustomer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["bookings"], 1)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["bookings"], 2)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings?search=bob@example.com", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["bookings"], 1)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings?status=garbage", tokenAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["bookings"], 2)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/bookings?from=nonsense", tokenAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	handler := setupTestServer(t)
	id := createBooking(t, handler, tokenCustomer)

	rec := doRequest(t, handler, http.MethodPatch, "/api/v1/bookings/"+id+"/status", tokenAdmin, map[string]string{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "CONFIRMED", body["booking"].(map[string]any)["status"])

	// The owner cannot confirm, only cancel.
	id2 := createBooking(t, handler, tokenCustomer)
	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/bookings/"+id2+"/status", tokenCustomer, map[string]string{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/bookings/"+id2+"/status", tokenCustomer, map[string]string{"status": "CANCELLED"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Foreign bookings read as missing.
	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/bookings/"+id+"/status", tokenCustomer2, map[string]string{"status": "CANCELLED"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodPatch, "/api/v1/bookings/"+id+"/status", tokenAdmin, map[string]string{"status": "APPROVED"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDetailsEndpoint(t *testing.T) {
	handler := setupTestServer(t)
	id := createBooking(t, handler, tokenCustomer)

	edit := map[string]any{
		"startDate": "2025-08-01",
		"endDate":   "2025-08-10",
		"groupSize": 4,
		"notes":     "late arrival",
	}

	rec := doRequest(t, handler, http.MethodPut, "/api/v1/bookings/"+id, tokenCustomer, edit)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, "/api/v1/bookings/"+id, tokenAdmin, edit)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["booking"].(map[string]any)["groupSize"])
}

func TestRateLimiting(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions := session.NewMemoryStore(time.Hour)
	svc := booking.NewService(db, events.NewEventBus(), &logger)
	resolver := session.NewResolver(sessions, db, &logger)

	cfg := config.Config{RateLimit: config.RateLimitConfig{RPS: 1, Burst: 2}}
	limited := NewServer(cfg, svc, resolver, &logger).Handler()

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := doRequest(t, limited, http.MethodGet, "/healthz", "", nil)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Contains(t, codes[2:], http.StatusTooManyRequests)
}

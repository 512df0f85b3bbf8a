package api

import (
	"encoding/json"
	"net/http"

	"beyondborders/internal/booking"
	"beyondborders/internal/metrics"
	"beyondborders/internal/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.svc.ListServices(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var input booking.CreateInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.svc.Create(r.Context(), PrincipalFrom(r.Context()), input)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "booking": created})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	query := booking.ListQuery{
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	}

	views, err := s.svc.List(r.Context(), PrincipalFrom(r.Context()), query)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": views})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Get(r.Context(), PrincipalFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.svc.Transition(r.Context(), PrincipalFrom(r.Context()), chi.URLParam(r, "id"), models.Status(body.Status))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	metrics.IncTransition(string(updated.Status))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"booking": map[string]any{"id": updated.ID, "status": updated.Status},
	})
}

func (s *Server) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	var input booking.EditInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.svc.UpdateDetails(r.Context(), PrincipalFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking": updated})
}

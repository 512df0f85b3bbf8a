package booking

import (
	"context"
	"errors"
	"time"

	"beyondborders/internal/database"
	"beyondborders/internal/domain"
	"beyondborders/internal/events"
	"beyondborders/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the booking lifecycle engine. It owns validation, the status
// state machine, permission resolution and role-scoped listing; persistence
// and identity stay behind interfaces. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Detail is the booking view plus the viewer's capability set.
type Detail struct {
	Booking     View        `json:"booking"`
	Permissions Permissions `json:"permissions"`
}

// Create validates the input and persists a new PENDING booking owned by the
// actor. Service existence and date availability are deliberately not
// checked; scheduling conflicts are resolved by administrators.
func (s *Service) Create(ctx context.Context, actor *models.Principal, in CreateInput) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	start, end, guest, err := in.validate()
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.NewString(),
		OwnerID:   actor.ID,
		ServiceID: in.ServiceID,
		StartDate: start,
		EndDate:   end,
		GroupSize: in.GroupSize,
		Status:    models.StatusPending,
		Notes:     in.Notes,
		Guest:     guest,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, s.storeError(err, "create booking", booking.ID)
	}

	s.logger.Info().Str("booking_id", booking.ID).Str("owner_id", booking.OwnerID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, actor)
	return booking, nil
}

// Transition applies one edge of the status state machine on behalf of the
// actor. The write is a compare-and-swap against the status read here, so
// two racing transitions cannot both succeed.
func (s *Service) Transition(ctx context.Context, actor *models.Principal, bookingID string, requested models.Status) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !requested.Valid() {
		return nil, validationf("unknown status: %s", requested)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, s.storeError(err, "load booking", bookingID)
	}

	isOwner := booking.OwnerID == actor.ID
	if actor.Role == models.RoleCustomer && !isOwner {
		// A foreign booking must look identical to a nonexistent one.
		return nil, ErrNotFound
	}
	if !CanTransition(actor.Role, isOwner, booking.Status, requested) {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, booking.Status, requested); err != nil {
		return nil, s.storeError(err, "transition booking", bookingID)
	}

	s.logger.Info().
		Str("booking_id", bookingID).
		Str("from", string(booking.Status)).
		Str("to", string(requested)).
		Str("actor_id", actor.ID).
		Msg("booking status changed")

	booking.Status = requested
	booking.UpdatedAt = time.Now().UTC()
	s.publishEvent(transitionEvent(requested), booking, actor)
	return booking, nil
}

// UpdateDetails edits dates, group size, notes and guest contact on a
// non-terminal booking. Administrator-only; the same invariants as creation
// are re-checked.
func (s *Service) UpdateDetails(ctx context.Context, actor *models.Principal, bookingID string, in EditInput) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	start, end, guest, err := in.validate()
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, s.storeError(err, "load booking", bookingID)
	}
	if booking.Status.IsTerminal() {
		return nil, ErrConflict
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.GroupSize = in.GroupSize
	booking.Notes = in.Notes
	booking.Guest = guest

	if err := s.repo.UpdateBookingDetails(ctx, booking); err != nil {
		return nil, s.storeError(err, "update booking details", bookingID)
	}

	s.logger.Info().Str("booking_id", bookingID).Str("actor_id", actor.ID).Msg("booking details updated")
	s.publishEvent(events.EventBookingUpdated, booking, actor)
	return booking, nil
}

// List composes the role-scoped, filtered, searchable view over bookings.
// Customers are always restricted to their own records before any other
// filter applies.
func (s *Service) List(ctx context.Context, actor *models.Principal, q ListQuery) ([]View, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	filter := models.BookingFilter{Status: normalizeStatusFilter(q.Status)}
	if actor.Role != models.RoleAdmin {
		filter.OwnerID = actor.ID
	}
	if raw := q.DateFrom; raw != "" {
		from, ok := parseDate(raw)
		if !ok {
			return nil, validationf("invalid date filter: %q", raw)
		}
		filter.From = from
	}
	if raw := q.DateTo; raw != "" {
		to, ok := parseDate(raw)
		if !ok {
			return nil, validationf("invalid date filter: %q", raw)
		}
		filter.To = to
	}

	rows, err := s.repo.ListBookingRows(ctx, filter)
	if err != nil {
		return nil, s.storeError(err, "list bookings", "")
	}

	includeCustomer := actor.Role == models.RoleAdmin
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		if !matchesSearch(row, q.Search) {
			continue
		}
		views = append(views, viewFromRow(row, includeCustomer))
	}
	return views, nil
}

// Get returns the booking view together with the viewer's capability set.
// Customers asking for someone else's booking get ErrNotFound.
func (s *Service) Get(ctx context.Context, actor *models.Principal, bookingID string) (*Detail, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	row, err := s.repo.GetBookingRow(ctx, bookingID)
	if err != nil {
		return nil, s.storeError(err, "load booking", bookingID)
	}

	isOwner := row.OwnerID == actor.ID
	if actor.Role == models.RoleCustomer && !isOwner {
		return nil, ErrNotFound
	}

	return &Detail{
		Booking:     viewFromRow(row, actor.Role == models.RoleAdmin),
		Permissions: ResolvePermissions(actor.Role, row.Status, isOwner),
	}, nil
}

// ListServices exposes the read-only service catalog.
func (s *Service) ListServices(ctx context.Context) ([]*models.Service, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, s.storeError(err, "list services", "")
	}
	return services, nil
}

func transitionEvent(to models.Status) string {
	switch to {
	case models.StatusConfirmed:
		return events.EventBookingConfirmed
	case models.StatusCancelled:
		return events.EventBookingCancelled
	case models.StatusCompleted:
		return events.EventBookingCompleted
	default:
		return events.EventBookingUpdated
	}
}

// storeError maps store sentinels onto the engine taxonomy. Anything
// unexpected is logged in full and surfaced as the generic ErrInternal.
func (s *Service) storeError(err error, op, bookingID string) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrStatusConflict):
		return ErrConflict
	default:
		s.logger.Error().Err(err).Str("op", op).Str("booking_id", bookingID).Msg("store error")
		return ErrInternal
	}
}

func (s *Service) publishEvent(eventType string, booking *models.Booking, actor *models.Principal) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		OwnerID:    booking.OwnerID,
		ServiceID:  booking.ServiceID,
		Status:     booking.Status,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		OccurredAt: time.Now().UTC(),
	}
	if booking.Guest != nil {
		payload.GuestEmail = booking.Guest.Email
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

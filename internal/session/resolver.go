package session

import (
	"context"
	"errors"

	"beyondborders/internal/database"
	"beyondborders/internal/domain"
	"beyondborders/internal/models"

	"github.com/rs/zerolog"
)

// Resolver turns a bearer token into a Principal. The role is re-read from
// the user store on every call; it is never cached and never taken from the
// client. Any failure along the way yields no principal, not a downgraded
// one.
type Resolver struct {
	sessions domain.SessionRepository
	users    domain.Repository
	logger   *zerolog.Logger
}

func NewResolver(sessions domain.SessionRepository, users domain.Repository, logger *zerolog.Logger) *Resolver {
	return &Resolver{sessions: sessions, users: users, logger: logger}
}

// Principal resolves the token. ErrNoSession covers empty, unknown and
// expired tokens alike.
func (r *Resolver) Principal(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	userID, err := r.sessions.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			r.logger.Error().Err(err).Msg("session lookup failed")
		}
		return nil, ErrNoSession
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			r.logger.Error().Err(err).Str("user_id", userID).Msg("role resolution failed")
		}
		return nil, ErrNoSession
	}

	return &models.Principal{ID: user.ID, Role: user.Role}, nil
}

package api

import (
	"context"

	"beyondborders/internal/models"
)

type contextKey int

const principalKey contextKey = iota

// WithPrincipal attaches the resolved principal to the request context.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal resolved by the auth middleware, or
// nil when the request was not authenticated.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}

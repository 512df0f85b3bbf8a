package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"beyondborders/internal/booking"
	"beyondborders/internal/config"
	"beyondborders/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the booking portal HTTP API.
type Server struct {
	cfg      config.ServerConfig
	svc      *booking.Service
	resolver *session.Resolver
	logger   *zerolog.Logger
	server   *http.Server
}

func NewServer(cfg config.Config, svc *booking.Service, resolver *session.Resolver, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:      cfg.Server,
		svc:      svc,
		resolver: resolver,
		logger:   logger,
	}

	limiter := newRateLimiter(cfg.RateLimit)

	r := chi.NewRouter()
	r.Use(srv.requestLogger)
	r.Use(limiter.Wrap)

	r.Get("/healthz", srv.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/services", srv.handleListServices)

		r.Group(func(r chi.Router) {
			r.Use(srv.authenticate)
			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", srv.handleCreateBooking)
				r.Get("/", srv.handleListBookings)
				r.Get("/{id}", srv.handleGetBooking)
				r.Patch("/{id}/status", srv.handleUpdateStatus)
				r.Put("/{id}", srv.handleUpdateDetails)
			})
		})
	})

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return srv
}

// Handler returns the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Package devserver is an in-memory implementation of the weather-alert
// REST API for local development and integration tests. It mirrors the
// production contract: JSON bodies, bearer-token auth, admin-gated alert
// mutations, and `{"message": ...}` error payloads.
package devserver

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/me/skywarn/pkg/model"
)

// account pairs a user profile with its password hash.
type account struct {
	user         model.User
	passwordHash []byte
}

// Server is the in-memory API server.
type Server struct {
	router chi.Router
	logger *slog.Logger
	secret []byte

	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	alerts   []model.Alert       // canonical server order: oldest first
}

// Option configures optional Server state.
type Option func(*Server)

// WithUser seeds an account. Intended for tests and local development.
func WithUser(name, email, password string, role model.Role) Option {
	return func(s *Server) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			panic("devserver: hash seed password: " + err.Error())
		}
		s.accounts[email] = &account{
			user:         model.User{ID: newID("usr"), Name: name, Email: email, Role: role},
			passwordHash: hash,
		}
	}
}

// WithSeedAlerts seeds the alert collection in the given order.
func WithSeedAlerts(alerts []model.Alert) Option {
	return func(s *Server) {
		s.alerts = append(s.alerts, alerts...)
	}
}

// New creates a Server with all routes registered. The secret signs the
// bearer tokens the auth endpoints issue.
func New(secret []byte, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger.With("component", "devserver"),
		secret:   secret,
		accounts: make(map[string]*account),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(middleware.Recoverer)

	s.router.Post("/auth/register", s.handleRegister)
	s.router.Post("/auth/login", s.handleLogin)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/alerts", s.handleListAlerts)
		r.Get("/alerts/{id}", s.handleGetAlert)
		r.Get("/weather/current", s.handleCurrentWeather)
		r.Get("/ml/predict", s.handlePredict)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/alerts", s.handleCreateAlert)
			r.Put("/alerts/{id}", s.handleUpdateAlert)
			r.Delete("/alerts/{id}", s.handleDeleteAlert)
		})
	})

	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

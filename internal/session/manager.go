// Package session owns the authenticated-user state machine: login,
// registration, restore from the credential store, and logout. It is the
// single writer of its state; consumers read snapshots via State.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/me/skywarn/internal/credstore"
	"github.com/me/skywarn/internal/logging"
	"github.com/me/skywarn/pkg/model"
)

// Status is the authentication state of the session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusFailed          Status = "failed"
)

// State is a read-only snapshot of the session. The token itself is never
// part of the snapshot; it lives only in the credential store and the
// request pipeline.
type State struct {
	Status    Status
	User      *model.User
	LastError string
}

// AuthAPI is the slice of the request pipeline the manager uses.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
}

// Manager drives the session state machine.
//
// Only one login or register attempt may be in flight at a time; callers
// are responsible for not starting a second attempt while one is pending.
type Manager struct {
	api    AuthAPI
	store  credstore.Store
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewManager creates a Manager in the unauthenticated state.
func NewManager(api AuthAPI, store credstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		api:    api,
		store:  store,
		logger: logger.With("component", "session"),
		state:  State{Status: StatusUnauthenticated},
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CheckAuth restores the session from the credential store without a
// network round trip. Absent credentials are a normal outcome, not an
// error: the session simply stays unauthenticated.
func (m *Manager) CheckAuth(ctx context.Context) {
	token, hasToken, err := m.store.Get(ctx, credstore.KeyAuthToken)
	if err != nil {
		m.logger.Warn("token restore failed", "error", err)
	}
	profile, hasUser, err := m.store.Get(ctx, credstore.KeyUserProfile)
	if err != nil {
		m.logger.Warn("profile restore failed", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !hasToken || token == "" || !hasUser {
		m.state = State{Status: StatusUnauthenticated}
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(profile), &user); err != nil {
		m.logger.Warn("stored profile unreadable", "error", err)
		m.state = State{Status: StatusUnauthenticated}
		return
	}

	m.logger.Debug("session restored", "user_id", user.ID)
	m.state = State{Status: StatusAuthenticated, User: &user}
}

// Login authenticates with email and password. On success the token and
// profile are persisted atomically before the state becomes authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := validateEmail("login", email); err != nil {
		m.setError(err)
		return err
	}

	m.begin()

	resp, err := m.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.fail(err)
		return err
	}

	return m.complete(ctx, "login", resp)
}

// Register creates a new account. The password must meet the minimum
// policy and match its confirmation; both are checked locally before any
// network dispatch.
func (m *Manager) Register(ctx context.Context, name, email, password, confirm string) error {
	if name == "" {
		err := model.NewValidationError("register", "Name is required")
		m.setError(err)
		return err
	}
	if err := validateEmail("register", email); err != nil {
		m.setError(err)
		return err
	}
	if err := validateNewPassword("register", password, confirm); err != nil {
		m.setError(err)
		return err
	}

	m.begin()

	resp, err := m.api.Register(ctx, model.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.fail(err)
		return err
	}

	return m.complete(ctx, "register", resp)
}

// Logout deletes the persisted credentials and resets the session. The
// reset happens unconditionally: a failed deletion must never leave the
// user looking authenticated.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.DeleteMany(ctx, credstore.KeyAuthToken, credstore.KeyUserProfile); err != nil {
		m.logger.Warn("credential delete failed on logout", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Status: StatusUnauthenticated}
}

// ClearError clears the last error message without altering the
// authentication state.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastError = ""
}

// HandleAuthExpired resets the session after the request pipeline has
// wiped the stored credentials on an authentication-rejected response.
// Wire it into the pipeline's auth-expired handler.
func (m *Manager) HandleAuthExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Debug("authentication expired")
	m.state = State{Status: StatusUnauthenticated}
}

// begin marks an authentication attempt as in flight.
func (m *Manager) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Status = StatusAuthenticating
	m.state.LastError = ""
}

// fail records a rejected attempt. Previously persisted credentials are
// left untouched.
func (m *Manager) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Status = StatusFailed
	m.state.User = nil
	m.state.LastError = model.ErrorMessage(err)
}

// setError records a local validation failure without changing status.
func (m *Manager) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastError = model.ErrorMessage(err)
}

// complete persists the credentials and transitions to authenticated.
// Both writes commit in one transaction; if persistence fails the state
// reflects the failure rather than a false-positive success.
func (m *Manager) complete(ctx context.Context, op string, resp *model.AuthResponse) error {
	profile, err := json.Marshal(resp.User)
	if err != nil {
		wrapped := &model.Error{Op: op, Kind: model.KindUnexpected, Message: model.MsgUnexpectedError, Err: err}
		m.fail(wrapped)
		return wrapped
	}

	err = m.store.SetMany(ctx, map[string]string{
		credstore.KeyAuthToken:   resp.Token,
		credstore.KeyUserProfile: string(profile),
	})
	if err != nil {
		m.logger.Warn("credential persist failed", "error", err)
		wrapped := &model.Error{Op: op, Kind: model.KindUnexpected, Message: model.MsgUnexpectedError, Err: err}
		m.fail(wrapped)
		return wrapped
	}

	user := resp.User

	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Debug("authenticated", "user_id", user.ID, "role", user.Role)
	m.state = State{Status: StatusAuthenticated, User: &user}
	return nil
}

// Package alerts owns the local view of server-side alert records: an
// ordered collection, the currently viewed alert, and the loading/error
// flags consumers render. All mutation goes through the container's own
// operations; consumers read snapshots via State.
package alerts

import (
	"context"
	"log/slog"
	"sync"

	"github.com/me/skywarn/internal/logging"
	"github.com/me/skywarn/pkg/model"
)

// AlertAPI is the slice of the request pipeline the container uses.
type AlertAPI interface {
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	GetAlert(ctx context.Context, id string) (*model.Alert, error)
	CreateAlert(ctx context.Context, req model.CreateAlertRequest) (*model.Alert, error)
	UpdateAlert(ctx context.Context, id string, req model.UpdateAlertRequest) (*model.Alert, error)
	DeleteAlert(ctx context.Context, id string) error
}

// State is a read-only snapshot of the alert collection.
//
// Loading tracks FetchAll only; create, update, and delete do not toggle
// it, matching the list-level refresh indicator it backs.
type State struct {
	Items   []model.Alert
	Current *model.Alert
	Loading bool
	Error   string
}

// Container orchestrates alert CRUD against the remote API and applies
// deterministic local state transitions on success and failure.
//
// Concurrent operations follow last-writer-wins on the shared state; no
// version check is performed against the server. The collection is never
// persisted locally — FetchAll rebuilds it from the server.
type Container struct {
	api    AlertAPI
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewContainer creates an empty container.
func NewContainer(api AlertAPI, logger *slog.Logger) *Container {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Container{
		api:    api,
		logger: logger.With("component", "alerts"),
	}
}

// State returns a snapshot of the collection. The items slice is copied
// so later container writes cannot race with the caller's reads.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	snap.Items = append([]model.Alert(nil), c.state.Items...)
	if c.state.Current != nil {
		current := *c.state.Current
		snap.Current = &current
	}
	return snap
}

// FetchAll replaces the collection wholesale with the server's current
// ordered list. On failure the previous items are left untouched.
func (c *Container) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	items, err := c.api.ListAlerts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Error = model.ErrorMessage(err)
		return err
	}
	c.logger.Debug("fetched alerts", "count", len(items))
	c.state.Items = items
	return nil
}

// FetchByID loads a single alert into Current. Items are not touched;
// on failure Current keeps its previous value.
func (c *Container) FetchByID(ctx context.Context, id string) error {
	alert, err := c.api.GetAlert(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = model.ErrorMessage(err)
		return err
	}
	c.state.Current = alert
	return nil
}

// Create creates an alert and inserts it at the front of the collection.
// Front insertion is a local presentation rule (most recent first); the
// server's canonical order applies again on the next FetchAll.
func (c *Container) Create(ctx context.Context, req model.CreateAlertRequest) error {
	alert, err := c.api.CreateAlert(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = model.ErrorMessage(err)
		return err
	}
	c.logger.Debug("created alert", "id", alert.ID)
	c.state.Items = append([]model.Alert{*alert}, c.state.Items...)
	return nil
}

// Update applies a partial update and replaces the matching entry at its
// existing position. When the updated alert is Current, Current follows.
// An id absent from the collection is not an error; the update simply is
// not reflected in the list.
func (c *Container) Update(ctx context.Context, id string, req model.UpdateAlertRequest) error {
	alert, err := c.api.UpdateAlert(ctx, id, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = model.ErrorMessage(err)
		return err
	}
	for i := range c.state.Items {
		if c.state.Items[i].ID == alert.ID {
			c.state.Items[i] = *alert
			break
		}
	}
	if c.state.Current != nil && c.state.Current.ID == alert.ID {
		c.state.Current = alert
	}
	return nil
}

// Delete removes the matching entry and clears Current when it pointed
// at the deleted alert.
func (c *Container) Delete(ctx context.Context, id string) error {
	err := c.api.DeleteAlert(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = model.ErrorMessage(err)
		return err
	}
	kept := c.state.Items[:0]
	for _, a := range c.state.Items {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	c.state.Items = kept
	if c.state.Current != nil && c.state.Current.ID == id {
		c.state.Current = nil
	}
	return nil
}

// ClearCurrent drops the currently viewed alert. No network call.
func (c *Container) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Current = nil
}

// ClearError clears the last error message. No network call.
func (c *Container) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
}

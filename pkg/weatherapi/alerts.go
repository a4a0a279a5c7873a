package weatherapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/skywarn/pkg/model"
)

// ListAlerts returns every alert in the server's canonical order.
func (c *Client) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := c.do(ctx, "alerts.list", http.MethodGet, "/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlert fetches a single alert by id.
func (c *Client) GetAlert(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	if err := c.do(ctx, "alerts.get", http.MethodGet, "/alerts/"+url.PathEscape(id), nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// CreateAlert creates an alert. Admin only; the server rejects others.
func (c *Client) CreateAlert(ctx context.Context, req model.CreateAlertRequest) (*model.Alert, error) {
	var alert model.Alert
	if err := c.do(ctx, "alerts.create", http.MethodPost, "/alerts", req, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateAlert applies a partial update to the alert with the given id and
// returns the updated record.
func (c *Client) UpdateAlert(ctx context.Context, id string, req model.UpdateAlertRequest) (*model.Alert, error) {
	var alert model.Alert
	if err := c.do(ctx, "alerts.update", http.MethodPut, "/alerts/"+url.PathEscape(id), req, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes the alert with the given id.
func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.do(ctx, "alerts.delete", http.MethodDelete, "/alerts/"+url.PathEscape(id), nil, nil)
}

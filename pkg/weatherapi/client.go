package weatherapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/me/skywarn/pkg/model"
)

// TokenSource supplies the current bearer token and handles invalidation.
// The client reads the token fresh on every request rather than caching
// it, so out-of-band invalidation takes effect immediately.
type TokenSource interface {
	// Token returns the stored token, or ok=false when none is stored.
	Token(ctx context.Context) (token string, ok bool, err error)

	// Invalidate removes the stored token and cached user profile.
	Invalidate(ctx context.Context) error
}

// Client is the authenticated request pipeline for the weather-alert API.
type Client struct {
	httpClient    *http.Client
	config        Config
	creds         TokenSource
	onAuthExpired func()
	logger        *slog.Logger
}

// NewClient creates an API client. creds may be nil, in which case every
// request is sent unauthenticated.
func NewClient(config Config, creds TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		creds:  creds,
		logger: logger.With("component", "weatherapi"),
	}
}

// SetAuthExpiredHandler registers fn to run after an authentication-rejected
// response has caused the stored credentials to be wiped. Must be called
// before the client is shared between goroutines.
func (c *Client) SetAuthExpiredHandler(fn func()) {
	c.onAuthExpired = fn
}

// requestID generates a unique request identifier for log correlation.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// do performs a single HTTP request and decodes a 2xx response body into
// out (when non-nil). Every failure comes back as a *model.Error carrying
// the op name, a kind classification, and a user-facing message.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	url := strings.TrimRight(c.config.BaseURL, "/") + path
	reqID := requestID()
	logger := c.logger.With("op", op, "method", method, "path", path, "request_id", reqID)

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &model.Error{Op: op, Kind: model.KindUnexpected, Message: model.MsgUnexpectedError, Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &model.Error{Op: op, Kind: model.KindUnexpected, Message: model.MsgUnexpectedError, Err: err}
	}
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.creds != nil {
		token, ok, err := c.creds.Token(ctx)
		switch {
		case err != nil:
			// A store read failure does not block the call; the request
			// goes out unauthenticated and the server decides.
			logger.Warn("token read failed", "error", err)
		case ok:
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("no response", "error", err)
		return &model.Error{Op: op, Kind: model.KindNetwork, Message: model.MsgNetworkError, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.Error{Op: op, Kind: model.KindNetwork, Message: model.MsgNetworkError, Err: err}
	}

	logger.Debug("response", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireAuth(ctx, logger)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.Error{
			Op:      op,
			Kind:    model.KindServer,
			Status:  resp.StatusCode,
			Message: serverMessage(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &model.Error{Op: op, Kind: model.KindUnexpected, Message: model.MsgUnexpectedError, Err: err}
		}
	}
	return nil
}

// expireAuth wipes the stored credentials and notifies the session layer.
// It runs synchronously: no caller can observe a signed-in state once an
// authentication-rejected call has finished.
func (c *Client) expireAuth(ctx context.Context, logger *slog.Logger) {
	if c.creds != nil {
		// The wipe must happen even when the request context is done.
		if err := c.creds.Invalidate(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("credential wipe failed", "error", err)
		}
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

// serverMessage extracts the server-supplied error message from a failure
// response body, falling back to a generic message.
func serverMessage(body []byte) string {
	var apiErr model.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if msg := apiErr.Text(); msg != "" {
			return msg
		}
	}
	return model.MsgServerError
}

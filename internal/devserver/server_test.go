package devserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/me/skywarn/pkg/model"
	"github.com/me/skywarn/pkg/weatherapi"
)

// memToken is a trivial TokenSource for driving the client in tests.
type memToken struct {
	mu    sync.Mutex
	token string
}

func (m *memToken) Token(ctx context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *memToken) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memToken) set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func startServer(t *testing.T, opts ...Option) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := New([]byte("test-secret"), logger, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func testClient(t *testing.T, url string, creds weatherapi.TokenSource) *weatherapi.Client {
	t.Helper()
	return weatherapi.NewClient(weatherapi.DefaultConfig().WithBaseURL(url), creds, nil)
}

func adminOption() Option {
	return WithUser("Ada", "admin@example.com", "hunter22", model.RoleAdmin)
}

func loginAdmin(t *testing.T, c *weatherapi.Client, creds *memToken) {
	t.Helper()
	resp, err := c.Login(context.Background(), model.LoginRequest{Email: "admin@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	creds.set(resp.Token)
}

func TestRegisterAndLogin(t *testing.T) {
	url := startServer(t)
	creds := &memToken{}
	c := testClient(t, url, creds)
	ctx := context.Background()

	reg, err := c.Register(ctx, model.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" || reg.User.Role != model.RoleMember {
		t.Errorf("register response = %+v", reg)
	}

	login, err := c.Login(ctx, model.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login user %q, want %q", login.User.ID, reg.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	url := startServer(t, adminOption())
	c := testClient(t, url, &memToken{})

	_, err := c.Login(context.Background(), model.LoginRequest{Email: "admin@example.com", Password: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := model.ErrorMessage(err); got != "Invalid email or password" {
		t.Errorf("message = %q", got)
	}
}

func TestAlertsRequireAuth(t *testing.T) {
	url := startServer(t)
	c := testClient(t, url, &memToken{})

	_, err := c.ListAlerts(context.Background())
	if !model.IsAuthExpired(err) {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestAlertCRUDFlow(t *testing.T) {
	url := startServer(t, adminOption())
	creds := &memToken{}
	c := testClient(t, url, creds)
	ctx := context.Background()
	loginAdmin(t, c, creds)

	created, err := c.CreateAlert(ctx, model.CreateAlertRequest{
		Title:       "Flood Warning",
		Description: "River levels rising",
		Type:        model.TypeFlood,
		Severity:    model.SeverityHigh,
		Location:    "Riverside",
		StartDate:   time.Now().UTC(),
		EndDate:     time.Now().UTC().Add(6 * time.Hour),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Errorf("created = %+v", created)
	}

	list, err := c.ListAlerts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	got, err := c.GetAlert(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Flood Warning" {
		t.Errorf("get = %+v", got)
	}

	sev := model.SeverityMedium
	updated, err := c.UpdateAlert(ctx, created.ID, model.UpdateAlertRequest{Severity: &sev})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Severity != model.SeverityMedium || updated.Title != "Flood Warning" {
		t.Errorf("partial update result = %+v", updated)
	}

	if err := c.DeleteAlert(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteAlert(ctx, created.ID); !model.IsServer(err) {
		t.Errorf("second delete: %v", err)
	}

	list, err = c.ListAlerts(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list not empty after delete: %+v", list)
	}
}

func TestMemberCannotMutate(t *testing.T) {
	url := startServer(t)
	creds := &memToken{}
	c := testClient(t, url, creds)
	ctx := context.Background()

	reg, err := c.Register(ctx, model.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	creds.set(reg.Token)

	_, err = c.CreateAlert(ctx, model.CreateAlertRequest{
		Title: "Nope", Type: model.TypeOther, Severity: model.SeverityLow,
	})
	if err == nil {
		t.Fatal("member create succeeded")
	}
	if got := model.ErrorMessage(err); got != "Admin access required" {
		t.Errorf("message = %q", got)
	}

	// Reads are still allowed for members.
	if _, err := c.ListAlerts(ctx); err != nil {
		t.Errorf("member list: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	url := startServer(t, adminOption())
	creds := &memToken{}
	c := testClient(t, url, creds)
	ctx := context.Background()
	loginAdmin(t, c, creds)

	_, err := c.CreateAlert(ctx, model.CreateAlertRequest{Title: "Bad", Type: "Volcano", Severity: model.SeverityLow})
	if got := model.ErrorMessage(err); got != "Unknown alert type" {
		t.Errorf("message = %q, err = %v", got, err)
	}
}

func TestWeatherAndForecast(t *testing.T) {
	seed := []model.Alert{{
		ID: "a1", Title: "Heat", Type: model.TypeHeatwave, Severity: model.SeverityHigh, IsActive: true,
	}}
	url := startServer(t, adminOption(), WithSeedAlerts(seed))
	creds := &memToken{}
	c := testClient(t, url, creds)
	ctx := context.Background()
	loginAdmin(t, c, creds)

	weather, err := c.CurrentWeather(ctx)
	if err != nil {
		t.Fatalf("weather: %v", err)
	}
	if weather.Condition == "" {
		t.Errorf("weather = %+v", weather)
	}

	predictions, err := c.ForecastPredictions(ctx)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(predictions) < 2 {
		t.Errorf("predictions = %+v", predictions)
	}
	if predictions[0].Type != model.TypeHeatwave {
		t.Errorf("first prediction = %+v", predictions[0])
	}
}

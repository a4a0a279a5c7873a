package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/me/skywarn/pkg/model"
)

// fakeAlertAPI is a scriptable AlertAPI stub.
type fakeAlertAPI struct {
	list      []model.Alert
	alert     *model.Alert
	err       error
	listGate  chan struct{} // when non-nil, ListAlerts blocks until closed
	listCalls int
}

func (f *fakeAlertAPI) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	f.listCalls++
	if f.listGate != nil {
		<-f.listGate
	}
	return f.list, f.err
}

func (f *fakeAlertAPI) GetAlert(ctx context.Context, id string) (*model.Alert, error) {
	return f.alert, f.err
}

func (f *fakeAlertAPI) CreateAlert(ctx context.Context, req model.CreateAlertRequest) (*model.Alert, error) {
	return f.alert, f.err
}

func (f *fakeAlertAPI) UpdateAlert(ctx context.Context, id string, req model.UpdateAlertRequest) (*model.Alert, error) {
	return f.alert, f.err
}

func (f *fakeAlertAPI) DeleteAlert(ctx context.Context, id string) error {
	return f.err
}

func sampleAlerts() []model.Alert {
	return []model.Alert{
		{ID: "1", Title: "Flood Warning", Severity: model.SeverityHigh, Type: model.TypeFlood},
		{ID: "2", Title: "Heat Advisory", Severity: model.SeverityLow, Type: model.TypeHeatwave},
	}
}

func TestFetchAllReplacesItems(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	state := c.State()
	if len(state.Items) != 2 || state.Items[0].ID != "1" {
		t.Errorf("items = %+v", state.Items)
	}
	if state.Loading {
		t.Error("loading still set after fetch")
	}

	// A second fetch replaces wholesale, not appends.
	api.list = sampleAlerts()[:1]
	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := len(c.State().Items); got != 1 {
		t.Errorf("items after refetch = %d, want 1", got)
	}
}

func TestFetchAllTogglesLoading(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts(), listGate: make(chan struct{})}
	c := NewContainer(api, nil)

	done := make(chan error, 1)
	go func() { done <- c.FetchAll(context.Background()) }()

	// Wait for the in-flight fetch to mark the collection loading.
	deadline := time.Now().Add(time.Second)
	for !c.State().Loading {
		if time.Now().After(deadline) {
			t.Fatal("loading never set while fetch in flight")
		}
		time.Sleep(time.Millisecond)
	}

	close(api.listGate)
	if err := <-done; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if c.State().Loading {
		t.Error("loading not cleared after completion")
	}
}

func TestFetchAllFailureKeepsItems(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	api.err = &model.Error{Op: "alerts.list", Kind: model.KindNetwork, Message: model.MsgNetworkError}
	if err := c.FetchAll(ctx); err == nil {
		t.Fatal("expected error")
	}

	state := c.State()
	if len(state.Items) != 2 {
		t.Errorf("items lost on failed refresh: %d", len(state.Items))
	}
	if state.Error != model.MsgNetworkError {
		t.Errorf("error = %q", state.Error)
	}
	if state.Loading {
		t.Error("loading still set after failure")
	}
}

func TestFetchByIDSetsCurrent(t *testing.T) {
	alert := sampleAlerts()[0]
	api := &fakeAlertAPI{alert: &alert}
	c := NewContainer(api, nil)

	if err := c.FetchByID(context.Background(), "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	state := c.State()
	if state.Current == nil || state.Current.ID != "1" {
		t.Errorf("current = %+v", state.Current)
	}
	if len(state.Items) != 0 {
		t.Error("FetchByID touched items")
	}
}

func TestFetchByIDFailureKeepsCurrent(t *testing.T) {
	alert := sampleAlerts()[0]
	api := &fakeAlertAPI{alert: &alert}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchByID(ctx, "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	api.err = &model.Error{Op: "alerts.get", Kind: model.KindServer, Status: 404, Message: "alert not found"}
	if err := c.FetchByID(ctx, "9"); err == nil {
		t.Fatal("expected error")
	}

	state := c.State()
	if state.Current == nil || state.Current.ID != "1" {
		t.Errorf("current lost on failure: %+v", state.Current)
	}
	if state.Error != "alert not found" {
		t.Errorf("error = %q", state.Error)
	}
}

func TestCreateInsertsAtFront(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	api.alert = &model.Alert{ID: "3", Title: "Cyclone Watch", Severity: model.SeverityHigh, Type: model.TypeCyclone}
	if err := c.Create(ctx, model.CreateAlertRequest{Title: "Cyclone Watch"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items := c.State().Items
	if len(items) != 3 || items[0].ID != "3" {
		t.Errorf("new alert not first: %+v", items)
	}
	if items[1].ID != "1" || items[2].ID != "2" {
		t.Errorf("existing order disturbed: %+v", items)
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	first := c.State().Items[0]
	api.alert = &first
	if err := c.FetchByID(ctx, "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	updated := first
	updated.Severity = model.SeverityMedium
	api.alert = &updated

	sev := model.SeverityMedium
	if err := c.Update(ctx, "1", model.UpdateAlertRequest{Severity: &sev}); err != nil {
		t.Fatalf("update: %v", err)
	}

	state := c.State()
	if state.Items[0].ID != "1" || state.Items[0].Severity != model.SeverityMedium {
		t.Errorf("items[0] = %+v", state.Items[0])
	}
	if state.Current == nil || state.Current.Severity != model.SeverityMedium {
		t.Errorf("current not mirrored: %+v", state.Current)
	}
}

func TestUpdateUnknownIDLeavesListUntouched(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	api.alert = &model.Alert{ID: "99", Title: "Elsewhere", Severity: model.SeverityLow}
	if err := c.Update(ctx, "99", model.UpdateAlertRequest{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	state := c.State()
	if len(state.Items) != 2 || state.Items[0].ID != "1" || state.Items[1].ID != "2" {
		t.Errorf("items changed: %+v", state.Items)
	}
	if state.Error != "" {
		t.Errorf("unexpected error %q", state.Error)
	}
}

func TestDeleteRemovesAndClearsCurrent(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	first := sampleAlerts()[0]
	api.alert = &first
	if err := c.FetchByID(ctx, "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	if err := c.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	state := c.State()
	if len(state.Items) != 1 || state.Items[0].ID != "2" {
		t.Errorf("items = %+v", state.Items)
	}
	if state.Current != nil {
		t.Errorf("current not cleared: %+v", state.Current)
	}
}

func TestDeleteOtherKeepsCurrent(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	first := sampleAlerts()[0]
	api.alert = &first
	if err := c.FetchByID(ctx, "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	if err := c.Delete(ctx, "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	state := c.State()
	if state.Current == nil || state.Current.ID != "1" {
		t.Errorf("current cleared for unrelated delete: %+v", state.Current)
	}
}

func TestDeleteFailureKeepsItems(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	api.err = &model.Error{Op: "alerts.delete", Kind: model.KindServer, Status: 404, Message: "alert not found"}
	if err := c.Delete(ctx, "nope"); err == nil {
		t.Fatal("expected error")
	}

	state := c.State()
	if len(state.Items) != 2 {
		t.Errorf("items changed on failed delete: %+v", state.Items)
	}
	if state.Error != "alert not found" {
		t.Errorf("error = %q", state.Error)
	}
}

func TestClearCurrentAndError(t *testing.T) {
	api := &fakeAlertAPI{}
	c := NewContainer(api, nil)
	ctx := context.Background()

	first := sampleAlerts()[0]
	api.alert = &first
	if err := c.FetchByID(ctx, "1"); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}
	api.err = &model.Error{Kind: model.KindServer, Message: "boom"}
	c.FetchAll(ctx)

	c.ClearCurrent()
	c.ClearError()

	state := c.State()
	if state.Current != nil {
		t.Error("current not cleared")
	}
	if state.Error != "" {
		t.Errorf("error not cleared: %q", state.Error)
	}
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	api := &fakeAlertAPI{list: sampleAlerts()}
	c := NewContainer(api, nil)
	ctx := context.Background()

	if err := c.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	snap := c.State()
	snap.Items[0].Title = "mutated"

	if c.State().Items[0].Title == "mutated" {
		t.Error("snapshot shares backing storage with container state")
	}
}

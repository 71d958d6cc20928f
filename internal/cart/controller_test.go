package cart

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sakchai-01/school-pos/internal/notify"
)

// fakeRemote lets tests script server responses.
type fakeRemote struct {
	addFunc    func(item Item) (int, error)
	toggleFunc func(itemID string, available bool) error
}

func (f *fakeRemote) AddToCart(_ context.Context, item Item) (int, error) {
	return f.addFunc(item)
}

func (f *fakeRemote) ToggleAvailability(_ context.Context, itemID string, available bool) error {
	return f.toggleFunc(itemID, available)
}

func setupController(t *testing.T, remote Remote) (*Controller, *notify.Center) {
	t.Helper()
	center := notify.NewWithTimings(time.Hour, time.Millisecond)
	store := NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	ct := NewController(remote, store, center)
	ct.confirmFor = 10 * time.Millisecond
	return ct, center
}

func lastNotification(t *testing.T, center *notify.Center) notify.Notification {
	t.Helper()
	active := center.Active()
	if len(active) == 0 {
		t.Fatal("expected a notification")
	}
	return active[len(active)-1]
}

func TestAddItemSuccess(t *testing.T) {
	remote := &fakeRemote{addFunc: func(Item) (int, error) { return 3, nil }}
	ct, center := setupController(t, remote)
	ctl := NewControl("Add to cart")

	err := ct.AddItem(context.Background(), ctl, Item{ItemID: "i-1", Name: "Roti", Price: 30, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// Count comes from the server, contents from the local append.
	if ct.CartCount() != 3 {
		t.Errorf("CartCount = %d, want 3", ct.CartCount())
	}
	items := ct.Items()
	if len(items) != 1 || items[0].ItemID != "i-1" || items[0].Quantity != 2 {
		t.Errorf("unexpected cart contents: %+v", items)
	}

	if n := lastNotification(t, center); n.Severity != notify.SeveritySuccess {
		t.Errorf("Severity = %q, want success", n.Severity)
	}

	// Transient confirmation, then back to idle.
	if ctl.State() != StateConfirmed || ctl.Label() != "Added!" {
		t.Errorf("expected confirmed state, got %v %q", ctl.State(), ctl.Label())
	}
	waitFor(t, func() bool { return ctl.State() == StateIdle })
	if ctl.Disabled() || ctl.Label() != "Add to cart" {
		t.Errorf("expected control reverted, got disabled=%v label=%q", ctl.Disabled(), ctl.Label())
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	var got Item
	remote := &fakeRemote{addFunc: func(it Item) (int, error) { got = it; return 1, nil }}
	ct, _ := setupController(t, remote)

	if err := ct.AddItem(context.Background(), NewControl("Add"), Item{ItemID: "i-1", Price: 20}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got.Quantity != 1 {
		t.Errorf("submitted quantity = %d, want 1", got.Quantity)
	}
}

func TestAddItemFailureRevertsControl(t *testing.T) {
	remote := &fakeRemote{addFunc: func(Item) (int, error) { return 0, errors.New("connection refused") }}
	ct, center := setupController(t, remote)
	ctl := NewControl("Add to cart")

	if err := ct.AddItem(context.Background(), ctl, Item{ItemID: "i-1", Quantity: 1}); err == nil {
		t.Fatal("expected error")
	}

	if ctl.Disabled() || ctl.Label() != "Add to cart" || ctl.State() != StateIdle {
		t.Errorf("control not reverted: disabled=%v label=%q state=%v", ctl.Disabled(), ctl.Label(), ctl.State())
	}
	if len(ct.Items()) != 0 {
		t.Error("failed add must not touch the local cart")
	}
	if n := lastNotification(t, center); n.Severity != notify.SeverityError {
		t.Errorf("Severity = %q, want error", n.Severity)
	}
}

func TestAddItemRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	remote := &fakeRemote{addFunc: func(Item) (int, error) {
		<-release
		return 1, nil
	}}
	ct, _ := setupController(t, remote)
	ctl := NewControl("Add to cart")

	done := make(chan error, 1)
	go func() {
		done <- ct.AddItem(context.Background(), ctl, Item{ItemID: "i-1", Quantity: 1})
	}()

	waitFor(t, func() bool { return ctl.State() == StateSubmitting })

	// Second trigger while the first is in flight.
	if err := ct.AddItem(context.Background(), ctl, Item{ItemID: "i-1", Quantity: 1}); !errors.Is(err, ErrInFlight) {
		t.Errorf("expected ErrInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	if len(ct.Items()) != 1 {
		t.Errorf("expected a single entry, got %d", len(ct.Items()))
	}
}

func TestRemoveUpdatesCountAndNotifies(t *testing.T) {
	remote := &fakeRemote{addFunc: func(Item) (int, error) { return 99, nil }}
	ct, center := setupController(t, remote)

	if err := ct.AddItem(context.Background(), NewControl("Add"), Item{ItemID: "i-1", Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	if ct.CartCount() != 99 {
		t.Fatalf("CartCount = %d, want server-reported 99", ct.CartCount())
	}

	ct.Remove("i-1")

	if ct.CartCount() != 0 {
		t.Errorf("CartCount = %d, want local length 0", ct.CartCount())
	}
	if n := lastNotification(t, center); n.Severity != notify.SeverityInfo {
		t.Errorf("Severity = %q, want info", n.Severity)
	}
}

func TestControllerRehydratesFromStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := NewFileStore(path)
	if err := store.Save([]Item{{ItemID: "i-1", Name: "Toast", Price: 25, Quantity: 2}}); err != nil {
		t.Fatal(err)
	}

	center := notify.New()
	ct := NewController(&fakeRemote{}, store, center)

	if ct.CartCount() != 1 {
		t.Errorf("CartCount = %d, want 1", ct.CartCount())
	}
	d := ct.Display()
	if d.Total != 50 {
		t.Errorf("Total = %v, want 50", d.Total)
	}
}

func TestSetAvailabilityFailureRevertsToggle(t *testing.T) {
	remote := &fakeRemote{toggleFunc: func(string, bool) error { return errors.New("timeout") }}
	ct, center := setupController(t, remote)

	tg := NewToggle("i-7", true)
	if err := ct.SetAvailability(context.Background(), tg, false); err == nil {
		t.Fatal("expected error")
	}

	if !tg.Checked() {
		t.Error("toggle must revert to its pre-toggle state on failure")
	}
	if got := tg.Status(); got.Text != "on sale" {
		t.Errorf("status must stay at last confirmed value, got %q", got.Text)
	}
	if n := lastNotification(t, center); n.Severity != notify.SeverityError {
		t.Errorf("Severity = %q, want error", n.Severity)
	}
}

func TestSetAvailabilitySuccessUpdatesStatus(t *testing.T) {
	remote := &fakeRemote{toggleFunc: func(string, bool) error { return nil }}
	ct, _ := setupController(t, remote)

	tg := NewToggle("i-7", true)
	if err := ct.SetAvailability(context.Background(), tg, false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	if tg.Checked() {
		t.Error("expected toggle off")
	}
	if got := tg.Status(); got.Text != "sold out" || got.Class != "status-unavailable" {
		t.Errorf("unexpected status %+v", got)
	}
}

// waitFor polls until cond is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

package notify

import (
	"testing"
	"time"
)

func TestNotifyShowsNotification(t *testing.T) {
	c := New()

	n := c.Notify("Item added to cart", SeveritySuccess)
	if n.ID == "" {
		t.Error("expected generated ID")
	}
	if n.Severity != SeveritySuccess {
		t.Errorf("Severity = %q, want %q", n.Severity, SeveritySuccess)
	}

	active := c.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(active))
	}
	if active[0].State != StateVisible {
		t.Errorf("State = %v, want StateVisible", active[0].State)
	}
}

func TestAutoDismiss(t *testing.T) {
	c := NewWithTimings(20*time.Millisecond, 5*time.Millisecond)

	c.Notify("Could not reach server", SeverityError)

	// Still visible inside the display window.
	if len(c.Active()) != 1 {
		t.Fatal("expected notification to be visible")
	}

	// Removed without any user interaction after the window plus slide-out.
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if len(c.Active()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("notification was not auto-dismissed")
}

func TestEarlyDismiss(t *testing.T) {
	c := NewWithTimings(time.Hour, 5*time.Millisecond)

	n := c.Notify("Connection restored", SeverityInfo)
	c.Dismiss(n.ID)

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if len(c.Active()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("notification was not removed after early dismissal")
}

func TestDismissUnknownIsNoOp(t *testing.T) {
	c := New()
	c.Notify("hello", SeverityInfo)

	c.Dismiss("nonexistent")

	if len(c.Active()) != 1 {
		t.Error("dismissing an unknown id should not affect other notifications")
	}
}

func TestMultipleNotificationsStack(t *testing.T) {
	c := New()

	c.Notify("first", SeverityInfo)
	c.Notify("second", SeverityWarning)
	c.Notify("second", SeverityWarning) // duplicates are not merged

	active := c.Active()
	if len(active) != 3 {
		t.Fatalf("expected 3 stacked notifications, got %d", len(active))
	}
	if active[0].Message != "first" {
		t.Errorf("expected oldest first, got %q", active[0].Message)
	}
}

func TestSubscribeReceivesLifecycleEvents(t *testing.T) {
	c := NewWithTimings(10*time.Millisecond, time.Millisecond)
	ch := c.Subscribe()

	n := c.Notify("order placed", SeveritySuccess)

	ev := <-ch
	if ev.Type != EventShown || ev.Notification.ID != n.ID {
		t.Errorf("expected shown event for %s, got %+v", n.ID, ev)
	}

	select {
	case ev = <-ch:
		if ev.Type != EventRemoved {
			t.Errorf("expected removed event, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for removed event")
	}
}

package cart

import (
	"context"
	"sync"

	"github.com/sakchai-01/school-pos/internal/notify"
)

// StatusIndicator is the text/class pair shown next to a toggle.
type StatusIndicator struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// statusFor maps an availability flag to its indicator.
func statusFor(available bool) StatusIndicator {
	if available {
		return StatusIndicator{Text: "on sale", Class: "status-available"}
	}
	return StatusIndicator{Text: "sold out", Class: "status-unavailable"}
}

// Toggle models one availability switch for a menu item. Its checked state
// only ever reflects values the server has confirmed: a failed toggle call
// reverts to the pre-toggle state.
type Toggle struct {
	mu      sync.Mutex
	itemID  string
	checked bool
	status  StatusIndicator
}

// NewToggle creates a toggle for the given item in the given confirmed state.
func NewToggle(itemID string, checked bool) *Toggle {
	return &Toggle{itemID: itemID, checked: checked, status: statusFor(checked)}
}

// Checked returns the toggle's current state.
func (t *Toggle) Checked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checked
}

// Status returns the current status indicator.
func (t *Toggle) Status() StatusIndicator {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Toggle) setChecked(v bool) {
	t.mu.Lock()
	t.checked = v
	t.mu.Unlock()
}

func (t *Toggle) confirm(v bool) {
	t.mu.Lock()
	t.checked = v
	t.status = statusFor(v)
	t.mu.Unlock()
}

// SetAvailability reflects the user flipping the toggle to the given state.
// The change is sent to the server; on failure the toggle is reverted to its
// state immediately before the flip and an error notification is shown.
func (ct *Controller) SetAvailability(ctx context.Context, tg *Toggle, available bool) error {
	prev := tg.Checked()
	tg.setChecked(available)

	if err := ct.remote.ToggleAvailability(ctx, tg.itemID, available); err != nil {
		tg.setChecked(prev)
		ct.notifier.Notify("Could not update availability, please try again", notify.SeverityError)
		return err
	}

	tg.confirm(available)
	if available {
		ct.notifier.Notify("Item is now on sale", notify.SeveritySuccess)
	} else {
		ct.notifier.Notify("Item marked sold out", notify.SeveritySuccess)
	}
	return nil
}

package cart

import "sync"

// ControlState is the submission state of a single add-to-cart control.
type ControlState int

const (
	// StateIdle — the control shows its original label and accepts input.
	StateIdle ControlState = iota
	// StateSubmitting — a request is in flight; the control is disabled.
	StateSubmitting
	// StateConfirmed — the request succeeded; a transient confirmation label
	// is shown before the control reverts to idle.
	StateConfirmed
)

// Control models one add-to-cart control. It is disabled for the duration of
// its own request, so a control can never have two submissions in flight.
// Other controls are unaffected; there is no global lock.
type Control struct {
	mu            sync.Mutex
	label         string
	originalLabel string
	state         ControlState
	disabled      bool
}

// NewControl creates an idle, enabled control with the given label.
func NewControl(label string) *Control {
	return &Control{label: label, originalLabel: label}
}

// Label returns the currently displayed label.
func (b *Control) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// State returns the control's submission state.
func (b *Control) State() ControlState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Disabled reports whether the control is currently rejecting input.
func (b *Control) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// beginSubmit moves the control into the submitting state with a transient
// label. It returns false if the control is already disabled.
func (b *Control) beginSubmit(label string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return false
	}
	b.state = StateSubmitting
	b.disabled = true
	b.label = label
	return true
}

// confirm shows a transient confirmation label. The control stays disabled
// until reset.
func (b *Control) confirm(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateConfirmed
	b.label = label
}

// reset restores the original label and re-enables the control.
func (b *Control) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateIdle
	b.disabled = false
	b.label = b.originalLabel
}

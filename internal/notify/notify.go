package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity indicates the visual treatment of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// State describes where a notification is in its lifecycle.
type State int

const (
	// StateVisible — the notification is on screen.
	StateVisible State = iota
	// StateDismissing — the slide-out animation is running; the entry is
	// removed once it completes.
	StateDismissing
)

// Notification is a single transient message shown to the user.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	State     State     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// EventType categorises notification lifecycle events.
type EventType string

const (
	EventShown   EventType = "shown"
	EventRemoved EventType = "removed"
)

// Event is emitted to subscribers when a notification appears or is removed.
type Event struct {
	Type         EventType    `json:"type"`
	Notification Notification `json:"notification"`
}

// entry tracks one active notification and its timers.
type entry struct {
	n         Notification
	autoClose *time.Timer
	removal   *time.Timer
}

// Center manages transient notifications. Each notification auto-dismisses
// after a fixed display window through a dismissing-then-removed sequence,
// and may be dismissed early through Dismiss using the same sequence.
// Multiple notifications may be active at once; there is no queueing or
// deduplication.
type Center struct {
	mu          sync.Mutex
	entries     []*entry
	displayFor  time.Duration
	removeAfter time.Duration
	subs        []chan Event
}

const (
	// DefaultDisplayFor is how long a notification stays on screen.
	DefaultDisplayFor = 5 * time.Second
	// DefaultRemoveAfter is the slide-out duration before removal.
	DefaultRemoveAfter = 300 * time.Millisecond
)

// New creates a Center with the default display and slide-out windows.
func New() *Center {
	return NewWithTimings(DefaultDisplayFor, DefaultRemoveAfter)
}

// NewWithTimings creates a Center with custom windows (useful for testing).
func NewWithTimings(displayFor, removeAfter time.Duration) *Center {
	return &Center{displayFor: displayFor, removeAfter: removeAfter}
}

// Notify creates and shows a new notification.
func (c *Center) Notify(message string, severity Severity) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		State:     StateVisible,
		CreatedAt: time.Now(),
	}

	e := &entry{n: n}
	e.autoClose = time.AfterFunc(c.displayFor, func() { c.dismiss(n.ID) })

	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()

	c.publish(Event{Type: EventShown, Notification: n})
	return n
}

// Dismiss closes a notification before its display window elapses. Dismissing
// an unknown or already dismissing notification is a no-op.
func (c *Center) Dismiss(id string) {
	c.dismiss(id)
}

// dismiss starts the slide-out sequence for the given notification.
func (c *Center) dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.n.ID != id || e.n.State != StateVisible {
			continue
		}
		e.n.State = StateDismissing
		e.autoClose.Stop()
		e.removal = time.AfterFunc(c.removeAfter, func() { c.remove(id) })
		return
	}
}

// remove drops the notification from the active set once the slide-out is done.
func (c *Center) remove(id string) {
	c.mu.Lock()
	var removed *Notification
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.n.ID == id {
			n := e.n
			removed = &n
			continue
		}
		kept = append(kept, e)
	}
	c.entries = kept
	c.mu.Unlock()

	if removed != nil {
		c.publish(Event{Type: EventRemoved, Notification: *removed})
	}
}

// Active returns the notifications currently on screen, oldest first.
// Notifications mid slide-out are still included.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.n
	}
	return out
}

// Subscribe returns a channel of lifecycle events. Events are dropped for
// subscribers that fall behind.
func (c *Center) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

func (c *Center) publish(ev Event) {
	c.mu.Lock()
	subs := make([]chan Event, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

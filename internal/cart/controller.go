package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sakchai-01/school-pos/internal/notify"
)

// DefaultConfirmWindow is how long the transient "added" confirmation label
// is shown before a control reverts to idle.
const DefaultConfirmWindow = 2 * time.Second

// ErrInFlight is returned when a control is triggered while its previous
// submission is still in flight.
var ErrInFlight = errors.New("submission already in flight")

// Remote is the subset of server calls the controller performs.
type Remote interface {
	AddToCart(ctx context.Context, item Item) (int, error)
	ToggleAvailability(ctx context.Context, itemID string, available bool) error
}

// Storage is the durable mirror of the cart.
type Storage interface {
	Save(items []Item) error
	Load() []Item
}

// Notifier shows transient user-facing messages.
type Notifier interface {
	Notify(message string, severity notify.Severity) notify.Notification
}

// Controller owns the client-side cart state and keeps it consistent across
// add, quantity-update and remove operations. It is constructed once per
// session; there are no package-level globals. The in-memory cart is the
// single writer of its storage mirror.
type Controller struct {
	mu        sync.Mutex
	cart      *Cart
	store     Storage
	remote    Remote
	notifier  Notifier
	cartCount int

	confirmFor time.Duration
}

// NewController creates a controller, rehydrating the cart from storage.
// Malformed or absent persisted state yields an empty cart.
func NewController(remote Remote, store Storage, notifier Notifier) *Controller {
	c := FromItems(store.Load())
	return &Controller{
		cart:       c,
		store:      store,
		remote:     remote,
		notifier:   notifier,
		cartCount:  c.Len(),
		confirmFor: DefaultConfirmWindow,
	}
}

// AddItem submits the item through the given control. The control is
// disabled while the request is in flight and shows a transient
// confirmation label for the confirm window afterwards. On failure the
// control reverts to its original label immediately and an error
// notification is shown; the local cart is untouched.
//
// On success the item is appended to the local cart (merging quantity on a
// duplicate id, matching the server's merge), so the cart-count indicator
// and the cart contents cannot drift apart.
func (ct *Controller) AddItem(ctx context.Context, ctl *Control, item Item) error {
	if item.Quantity <= 0 {
		// No quantity control present; a single unit is implied.
		item.Quantity = 1
	}

	if !ctl.beginSubmit("Adding...") {
		return ErrInFlight
	}

	count, err := ct.remote.AddToCart(ctx, item)
	if err != nil {
		ctl.reset()
		ct.notifier.Notify("Could not add item, please try again", notify.SeverityError)
		return err
	}

	ct.mu.Lock()
	ct.cart.Add(item)
	saveErr := ct.store.Save(ct.cart.Items())
	ct.cartCount = count
	ct.mu.Unlock()

	if saveErr != nil {
		log.Printf("cart: persisting after add: %v", saveErr)
	}

	ct.notifier.Notify("Item added to cart", notify.SeveritySuccess)

	ctl.confirm("Added!")
	time.AfterFunc(ct.confirmFor, ctl.reset)
	return nil
}

// UpdateQuantity overwrites an item's quantity, removing it at zero or
// below, then re-persists. An absent id is a no-op.
func (ct *Controller) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		ct.Remove(itemID)
		return
	}

	ct.mu.Lock()
	ct.cart.UpdateQuantity(itemID, quantity)
	saveErr := ct.store.Save(ct.cart.Items())
	ct.mu.Unlock()

	if saveErr != nil {
		log.Printf("cart: persisting after quantity update: %v", saveErr)
	}
}

// Remove deletes an item, re-persists, updates the count indicator to the
// new cart length and shows an informational notification. Removing an
// absent id still succeeds.
func (ct *Controller) Remove(itemID string) {
	ct.mu.Lock()
	ct.cart.Remove(itemID)
	saveErr := ct.store.Save(ct.cart.Items())
	ct.cartCount = ct.cart.Len()
	ct.mu.Unlock()

	if saveErr != nil {
		log.Printf("cart: persisting after remove: %v", saveErr)
	}

	ct.notifier.Notify("Item removed from cart", notify.SeverityInfo)
}

// Clear empties the cart and its storage mirror, typically after a
// successful checkout.
func (ct *Controller) Clear() {
	ct.mu.Lock()
	ct.cart = New()
	saveErr := ct.store.Save(nil)
	ct.cartCount = 0
	ct.mu.Unlock()

	if saveErr != nil {
		log.Printf("cart: persisting after clear: %v", saveErr)
	}
}

// Display renders the current cart contents.
func (ct *Controller) Display() Display {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return Render(ct.cart.Items())
}

// Items returns a copy of the current cart contents.
func (ct *Controller) Items() []Item {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.cart.Items()
}

// CartCount returns the value shown on the cart-count indicator. After a
// successful add this is the server-reported count; after a remove it is
// the local cart length.
func (ct *Controller) CartCount() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.cartCount
}

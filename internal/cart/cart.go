package cart

// Item is one orderable line in a cart.
type Item struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ShopID   string  `json:"shop_id,omitempty"`
}

// Subtotal returns price × quantity for this line.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered sequence of items. Insertion order is preserved and
// item ids are unique: adding an id already present merges quantities
// instead of creating a second entry.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromItems builds a cart from a rehydrated item sequence, preserving order.
// Duplicate ids in the input are merged into the first occurrence.
func FromItems(items []Item) *Cart {
	c := New()
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add inserts the item, merging quantity into the existing entry when the
// id is already present.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].ItemID == item.ItemID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// UpdateQuantity overwrites the quantity of the matching item. A quantity
// of zero or less removes the item. An absent id is a no-op.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove filters out the matching item. Removing an absent id leaves the
// cart unchanged.
func (c *Cart) Remove(itemID string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

package cart

// Line is the display representation of one cart item.
type Line struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Display is a full rendering of the cart: one line per item plus the grand
// total. It is recomputed from scratch on every call rather than patched
// incrementally; carts are small enough that this does not matter.
type Display struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Render produces the display representation of an item sequence. It is a
// pure function of the input and performs no I/O.
func Render(items []Item) Display {
	d := Display{Lines: make([]Line, 0, len(items)), Count: len(items)}
	for _, it := range items {
		sub := it.Subtotal()
		d.Lines = append(d.Lines, Line{
			ItemID:    it.ItemID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Subtotal:  sub,
		})
		d.Total += sub
	}
	return d
}

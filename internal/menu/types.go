package menu

// Item is one menu entry offered by a shop. Cost is only visible to the
// shop itself; customer-facing listings omit it.
type Item struct {
	ItemID    int64   `json:"item_id"`
	ShopID    int64   `json:"shop_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost,omitempty"`
	Available bool    `json:"available"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category"`
}

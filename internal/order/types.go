package order

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is one placed order against a single shop.
type Order struct {
	OrderID     int64     `json:"order_id"`
	StudentID   string    `json:"student_id"`
	ShopID      int64     `json:"shop_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      Status    `json:"status"`
	OrderDate   time.Time `json:"order_date"`
}

// CheckoutResult reports what a checkout produced.
type CheckoutResult struct {
	OrderIDs   []int64 `json:"order_ids"`
	Total      float64 `json:"total"`
	NewBalance float64 `json:"new_balance"`
}

// MenuSales is one row of the per-menu sales report.
type MenuSales struct {
	Name      string  `json:"name"`
	TotalSold int64   `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
	TotalCost float64 `json:"total_cost"`
	Profit    float64 `json:"profit"`
}

// DailySales is one row of the last-7-days report.
type DailySales struct {
	Date        string  `json:"date"`
	OrdersCount int64   `json:"orders_count"`
	Revenue     float64 `json:"revenue"`
}

// DailyStats is today's headline numbers for a shop dashboard.
type DailyStats struct {
	OrderCount int64   `json:"order_count"`
	Takings    float64 `json:"takings"`
}

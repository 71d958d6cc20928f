package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakchai-01/school-pos/internal/cart"
	"github.com/sakchai-01/school-pos/internal/db"
)

var (
	// ErrEmptyCart is returned when checking out with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientBalance is returned when the student cannot cover the total.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnknownStudent is returned when the checkout student does not exist.
	ErrUnknownStudent = errors.New("unknown student")
)

// Store persists orders and answers the sales report queries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Checkout turns the cart into orders: one order per shop present in the
// cart, each with its order_items rows, and the grand total deducted from
// the student's balance. The whole operation runs in one transaction.
func (s *Store) Checkout(ctx context.Context, studentID string, items []cart.Item) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning checkout: %w", err)
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRowContext(ctx, `SELECT balance FROM students WHERE student_id = ?`, studentID).
		Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownStudent
	}
	if err != nil {
		return nil, fmt.Errorf("querying balance: %w", err)
	}
	if balance < total {
		return nil, ErrInsufficientBalance
	}

	// One order per shop, preserving the order shops first appear in the cart.
	var shopIDs []int64
	byShop := map[int64][]cart.Item{}
	for _, it := range items {
		shopID, err := strconv.ParseInt(it.ShopID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %s has invalid shop id %q", it.ItemID, it.ShopID)
		}
		if _, ok := byShop[shopID]; !ok {
			shopIDs = append(shopIDs, shopID)
		}
		byShop[shopID] = append(byShop[shopID], it)
	}

	result := &CheckoutResult{Total: total}
	for _, shopID := range shopIDs {
		shopItems := byShop[shopID]

		var shopTotal float64
		for _, it := range shopItems {
			shopTotal += it.Subtotal()
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (student_id, shop_id, total_amount, order_status)
			VALUES (?, ?, ?, ?)`,
			studentID, shopID, shopTotal, string(StatusCompleted),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting order: %w", err)
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading order id: %w", err)
		}

		for _, it := range shopItems {
			itemID, err := strconv.ParseInt(it.ItemID, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid item id %q", it.ItemID)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, item_id, quantity, price)
				VALUES (?, ?, ?, ?)`,
				orderID, itemID, it.Quantity, it.Price,
			); err != nil {
				return nil, fmt.Errorf("inserting order item: %w", err)
			}
		}

		result.OrderIDs = append(result.OrderIDs, orderID)
	}

	result.NewBalance = balance - total
	if _, err := tx.ExecContext(ctx, `
		UPDATE students SET balance = ? WHERE student_id = ?`,
		result.NewBalance, studentID,
	); err != nil {
		return nil, fmt.Errorf("deducting balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing checkout: %w", err)
	}
	return result, nil
}

// MenuSalesReport returns per-menu totals for a shop, best sellers first.
func (s *Store) MenuSalesReport(ctx context.Context, shopID int64) ([]MenuSales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name, SUM(oi.quantity) AS total_sold,
		       SUM(oi.quantity * oi.price) AS revenue,
		       SUM(oi.quantity * m.cost) AS total_cost,
		       SUM(oi.quantity * (oi.price - m.cost)) AS profit
		FROM order_items oi
		JOIN menu_items m ON oi.item_id = m.item_id
		JOIN orders o ON oi.order_id = o.order_id
		WHERE m.shop_id = ?
		GROUP BY m.item_id, m.name
		ORDER BY total_sold DESC`, shopID)
	if err != nil {
		return nil, fmt.Errorf("querying menu sales: %w", err)
	}
	defer rows.Close()

	var out []MenuSales
	for rows.Next() {
		var ms MenuSales
		if err := rows.Scan(&ms.Name, &ms.TotalSold, &ms.Revenue, &ms.TotalCost, &ms.Profit); err != nil {
			return nil, fmt.Errorf("scanning menu sales: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

// DailySalesReport returns the last seven days of order counts and revenue
// for a shop, newest first.
func (s *Store) DailySalesReport(ctx context.Context, shopID int64) ([]DailySales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(order_date) AS order_date,
		       COUNT(*) AS orders_count,
		       SUM(total_amount) AS daily_revenue
		FROM orders
		WHERE shop_id = ? AND order_date >= date('now', '-7 days')
		GROUP BY date(order_date)
		ORDER BY order_date DESC`, shopID)
	if err != nil {
		return nil, fmt.Errorf("querying daily sales: %w", err)
	}
	defer rows.Close()

	var out []DailySales
	for rows.Next() {
		var ds DailySales
		if err := rows.Scan(&ds.Date, &ds.OrdersCount, &ds.Revenue); err != nil {
			return nil, fmt.Errorf("scanning daily sales: %w", err)
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

// TodayStats returns today's order count and takings for a shop.
func (s *Store) TodayStats(ctx context.Context, shopID int64) (*DailyStats, error) {
	var st DailyStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), IFNULL(SUM(total_amount), 0)
		FROM orders
		WHERE shop_id = ? AND date(order_date) = date('now')`, shopID).
		Scan(&st.OrderCount, &st.Takings)
	if err != nil {
		return nil, fmt.Errorf("querying today's stats: %w", err)
	}
	return &st, nil
}

package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakchai-01/school-pos/internal/db"
)

// ErrNotFound is returned when the requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Store provides CRUD operations for menu items.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a menu item and returns its id. New items go on sale
// immediately.
func (s *Store) Create(ctx context.Context, it Item) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO menu_items (shop_id, name, price, cost, available, image_url, category)
		VALUES (?, ?, ?, ?, 1, ?, ?)`,
		it.ShopID, it.Name, it.Price, it.Cost, it.ImageURL, it.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting menu item: %w", err)
	}
	return res.LastInsertId()
}

// GetByID returns one menu item.
func (s *Store) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	var (
		it        Item
		available int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT item_id, shop_id, name, price, cost, available, image_url, category
		FROM menu_items WHERE item_id = ?`, itemID).
		Scan(&it.ItemID, &it.ShopID, &it.Name, &it.Price, &it.Cost, &available, &it.ImageURL, &it.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item: %w", err)
	}
	it.Available = available != 0
	return &it, nil
}

// ListAvailable returns a shop's on-sale items. Duplicate names are
// filtered, first occurrence wins.
func (s *Store) ListAvailable(ctx context.Context, shopID int64) ([]Item, error) {
	return s.list(ctx, shopID, true)
}

// ListAll returns every item a shop has, sold out ones included. The shop
// dashboard uses this so a sold-out item can be put back on sale.
func (s *Store) ListAll(ctx context.Context, shopID int64) ([]Item, error) {
	return s.list(ctx, shopID, false)
}

func (s *Store) list(ctx context.Context, shopID int64, availableOnly bool) ([]Item, error) {
	query := `
		SELECT item_id, shop_id, name, price, cost, available, image_url, category
		FROM menu_items WHERE shop_id = ?`
	if availableOnly {
		query += ` AND available = 1`
	}
	query += ` ORDER BY item_id`

	rows, err := s.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	seen := map[string]bool{}
	var out []Item
	for rows.Next() {
		var (
			it        Item
			available int
		)
		if err := rows.Scan(&it.ItemID, &it.ShopID, &it.Name, &it.Price, &it.Cost,
			&available, &it.ImageURL, &it.Category); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		if seen[it.Name] {
			continue
		}
		seen[it.Name] = true
		it.Available = available != 0
		out = append(out, it)
	}
	return out, rows.Err()
}

// SetAvailability flips a menu item's on-sale flag.
func (s *Store) SetAvailability(ctx context.Context, itemID int64, available bool) error {
	v := 0
	if available {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE menu_items SET available = ? WHERE item_id = ?`, v, itemID)
	if err != nil {
		return fmt.Errorf("updating availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

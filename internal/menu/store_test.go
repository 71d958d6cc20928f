package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/sakchai-01/school-pos/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.ExecContext(context.Background(),
		`INSERT INTO shops (shop_id, shop_name, owner_name, password_hash) VALUES (1, 'Noodle House', 'Mali', 'x')`,
	); err != nil {
		t.Fatalf("seeding shop: %v", err)
	}
	return NewStore(database)
}

func TestCreateAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, Item{
		ShopID: 1, Name: "Pad Thai", Price: 40, Cost: 25, Category: "noodles",
	})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	it, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("getting item: %v", err)
	}
	if it.Name != "Pad Thai" || it.Price != 40 {
		t.Errorf("unexpected item %+v", it)
	}
	if !it.Available {
		t.Error("new items should be on sale immediately")
	}
}

func TestGetUnknownItem(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetAvailability(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, Item{ShopID: 1, Name: "Tom Yum", Price: 50})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	if err := store.SetAvailability(ctx, id, false); err != nil {
		t.Fatalf("toggling off: %v", err)
	}

	available, err := store.ListAvailable(ctx, 1)
	if err != nil {
		t.Fatalf("listing available: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected sold-out item hidden, got %d items", len(available))
	}

	all, err := store.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("listing all: %v", err)
	}
	if len(all) != 1 || all[0].Available {
		t.Errorf("expected one sold-out item in the full list, got %+v", all)
	}

	if err := store.SetAvailability(ctx, id, true); err != nil {
		t.Fatalf("toggling back on: %v", err)
	}
	available, _ = store.ListAvailable(ctx, 1)
	if len(available) != 1 {
		t.Errorf("expected item back on sale, got %d items", len(available))
	}
}

func TestSetAvailabilityUnknownItem(t *testing.T) {
	store := setupStore(t)
	if err := store.SetAvailability(context.Background(), 999, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/sakchai-01/school-pos/internal/account"
	"github.com/sakchai-01/school-pos/internal/cart"
	"github.com/sakchai-01/school-pos/internal/db"
	"github.com/sakchai-01/school-pos/internal/menu"
)

func setupServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	accounts := account.NewStore(database)
	menus := menu.NewStore(database)

	if err := accounts.CreateStudent(ctx, account.Student{
		StudentID: "s1", Name: "Ploy", Balance: 200,
	}, "secret"); err != nil {
		t.Fatalf("creating student: %v", err)
	}
	shopID, err := accounts.CreateShop(ctx, account.Shop{
		ShopName: "Noodle House", OwnerName: "Mali",
	}, "shoppass")
	if err != nil {
		t.Fatalf("creating shop: %v", err)
	}
	if _, err := menus.Create(ctx, menu.Item{
		ShopID: shopID, Name: "Pad Thai", Price: 40, Cost: 25, Category: "noodles",
	}); err != nil {
		t.Fatalf("creating menu item: %v", err)
	}

	srv := New(Config{Port: 0}, database)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealthz(t *testing.T) {
	_, ts := setupServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestOrderFlow(t *testing.T) {
	_, ts := setupServer(t)
	ctx := context.Background()
	client := cart.NewClient(ts.URL)

	login, err := client.StudentLogin(ctx, "s1", "secret")
	if err != nil {
		t.Fatalf("student login: %v", err)
	}
	if login.Balance != 200 {
		t.Errorf("expected balance 200 at login, got %v", login.Balance)
	}

	shops, err := client.Shops(ctx)
	if err != nil {
		t.Fatalf("listing shops: %v", err)
	}
	if len(shops) != 1 || shops[0].ShopName != "Noodle House" {
		t.Fatalf("unexpected shop list: %+v", shops)
	}

	items, err := client.Menu(ctx, shops[0].ShopID)
	if err != nil {
		t.Fatalf("listing menu: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 menu item, got %d", len(items))
	}

	count, err := client.AddToCart(ctx, cart.Item{
		ItemID:   strconv.FormatInt(items[0].ItemID, 10),
		Name:     items[0].Name,
		Price:    items[0].Price,
		Quantity: 2,
		ShopID:   strconv.FormatInt(shops[0].ShopID, 10),
	})
	if err != nil {
		t.Fatalf("adding to cart: %v", err)
	}
	if count != 1 {
		t.Errorf("expected cart count 1, got %d", count)
	}

	checkout, err := client.Checkout(ctx)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if checkout.NewBalance != 120 {
		t.Errorf("expected new balance 120, got %v", checkout.NewBalance)
	}
	if len(checkout.OrderIDs) != 1 {
		t.Errorf("expected 1 order, got %d", len(checkout.OrderIDs))
	}

	// The session cart was cleared; a second checkout has nothing to buy.
	if _, err := client.Checkout(ctx); err == nil {
		t.Error("expected second checkout to fail on empty cart")
	}
}

func TestStudentLoginRejected(t *testing.T) {
	_, ts := setupServer(t)
	client := cart.NewClient(ts.URL)

	if _, err := client.StudentLogin(context.Background(), "s1", "wrong"); err == nil {
		t.Fatal("expected login to fail with a wrong password")
	}
}

func TestToggleAvailabilityFlow(t *testing.T) {
	srv, ts := setupServer(t)
	ctx := context.Background()
	client := cart.NewClient(ts.URL)

	menus := menu.NewStore(srv.Database())
	items, err := menus.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("listing menu: %v", err)
	}
	itemID := items[0].ItemID

	err = client.ToggleAvailability(ctx, strconv.FormatInt(itemID, 10), false)
	if err != nil {
		t.Fatalf("toggling availability: %v", err)
	}

	available, err := menus.ListAvailable(ctx, 1)
	if err != nil {
		t.Fatalf("listing available: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected no available items after toggle off, got %d", len(available))
	}

	// Unknown item ids are rejected without side effects.
	if err := client.ToggleAvailability(ctx, "9999", true); err == nil {
		t.Error("expected toggle of unknown item to fail")
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	_, ts := setupServer(t)
	client := cart.NewClient(ts.URL)

	if _, err := client.Checkout(context.Background()); err == nil {
		t.Fatal("expected anonymous checkout to be rejected")
	}
}

package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/db"
	"github.com/sakchai-01/school-pos/internal/notify"
	"github.com/sakchai-01/school-pos/internal/session"
)

func setupRouter(t *testing.T) (*Store, chi.Router) {
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

	store := NewStore(database)
	r := chi.NewRouter()
	RegisterRoutes(r, store, session.NewManager(), notify.NewWithTimings(50*time.Millisecond, 10*time.Millisecond))
	return store, r
}

func postToggle(t *testing.T, r chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/toggle_availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestToggleAcceptsStringItemID(t *testing.T) {
	store, r := setupRouter(t)
	id, err := store.Create(context.Background(), Item{ShopID: 1, Name: "Pad Thai", Price: 40})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first item id 1, got %d", id)
	}

	rec := postToggle(t, r, `{"item_id": "1", "available": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp["success"] {
		t.Error("expected success true")
	}

	it, _ := store.GetByID(context.Background(), id)
	if it.Available {
		t.Error("expected item sold out after toggle")
	}
}

func TestToggleAcceptsNumericItemID(t *testing.T) {
	store, r := setupRouter(t)
	id, _ := store.Create(context.Background(), Item{ShopID: 1, Name: "Tom Yum", Price: 50})

	rec := postToggle(t, r, `{"item_id": 1, "available": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	it, _ := store.GetByID(context.Background(), id)
	if it.Available {
		t.Error("expected item sold out after toggle")
	}
}

func TestToggleUnknownItemFails(t *testing.T) {
	_, r := setupRouter(t)

	rec := postToggle(t, r, `{"item_id": 999, "available": true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["success"] {
		t.Error("expected success false")
	}
}

func TestToggleMalformedBody(t *testing.T) {
	_, r := setupRouter(t)

	rec := postToggle(t, r, `{"item_id": "abc", "available": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestShopMenuHidesCost(t *testing.T) {
	store, r := setupRouter(t)
	if _, err := store.Create(context.Background(), Item{
		ShopID: 1, Name: "Pad Thai", Price: 40, Cost: 25,
	}); err != nil {
		t.Fatalf("creating item: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/shops/1/menu", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"cost"`) {
		t.Error("customer menu listing must not expose cost")
	}
}

func TestAddMenuItemRequiresShopSession(t *testing.T) {
	_, r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/add_menu_item",
		strings.NewReader(`{"name":"Pad Thai","price":"40","cost":"25","category":"noodles"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a shop session, got %d", rec.Code)
	}
}

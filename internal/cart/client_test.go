package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAddToCart(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/add_to_cart" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(AddResponse{Success: true, CartCount: 4})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	count, err := c.AddToCart(context.Background(), Item{
		ItemID: "12", Name: "Fried rice", Price: 45, Quantity: 2, ShopID: "1",
	})
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	for _, key := range []string{"item_id", "name", "price", "quantity", "shop_id"} {
		if _, ok := received[key]; !ok {
			t.Errorf("request body missing %q: %v", key, received)
		}
	}
}

func TestClientAddToCartRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AddResponse{Success: false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.AddToCart(context.Background(), Item{ItemID: "1", Quantity: 1}); !errors.Is(err, ErrRejected) {
		t.Errorf("expected ErrRejected, got %v", err)
	}
}

func TestClientToggleAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/toggle_availability" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			ItemID    string `json:"item_id"`
			Available bool   `json:"available"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body.ItemID != "7" || body.Available {
			t.Errorf("unexpected body %+v", body)
		}
		json.NewEncoder(w).Encode(ToggleResponse{Success: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.ToggleAvailability(context.Background(), "7", false); err != nil {
		t.Fatalf("ToggleAvailability: %v", err)
	}
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.AddToCart(context.Background(), Item{ItemID: "1", Quantity: 1}); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

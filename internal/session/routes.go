package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/cart"
)

// RegisterRoutes mounts the session-cart endpoints on the given router.
func RegisterRoutes(r chi.Router, mgr *Manager) {
	r.Post("/add_to_cart", handleAddToCart(mgr))
	r.Get("/cart", handleViewCart(mgr))
}

// handleAddToCart merges one item into the session cart and reports the
// resulting entry count. The count, not the merged contents, is what the
// terminal's cart indicator shows.
func handleAddToCart(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item cart.Item
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJSON(w, http.StatusBadRequest, cart.AddResponse{Success: false})
			return
		}
		if item.ItemID == "" || item.Quantity <= 0 || item.Price < 0 {
			writeJSON(w, http.StatusBadRequest, cart.AddResponse{Success: false})
			return
		}

		sess := mgr.GetOrCreate(w, r)
		count := sess.AddToCart(item)

		writeJSON(w, http.StatusOK, cart.AddResponse{Success: true, CartCount: count})
	}
}

// cartView is the response shape for the cart page.
type cartView struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

func handleViewCart(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := mgr.GetOrCreate(w, r)
		writeJSON(w, http.StatusOK, cartView{
			Items: sess.CartItems(),
			Total: sess.CartTotal(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/notify"
	"github.com/sakchai-01/school-pos/internal/session"
	"github.com/sakchai-01/school-pos/internal/validate"
)

// Notifier fans availability and menu changes out to connected dashboards.
type Notifier interface {
	Notify(message string, severity notify.Severity) notify.Notification
}

// RegisterRoutes mounts the menu endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, sessions *session.Manager, notifier Notifier) {
	r.Post("/toggle_availability", handleToggleAvailability(store, notifier))
	r.Post("/add_menu_item", handleAddMenuItem(store, sessions))
	r.Get("/api/shops/{shopID}/menu", handleShopMenu(store))
	r.Get("/api/my_menu", handleMyMenu(store, sessions))
}

// toggleRequest accepts item_id as either a JSON string or a number; the
// original terminals sent whatever the control carried.
type toggleRequest struct {
	ItemID    json.Number `json:"item_id"`
	Available bool        `json:"available"`
}

func handleToggleAvailability(store *Store, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body toggleRequest
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]bool{"success": false})
			return
		}

		itemID, err := body.ItemID.Int64()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]bool{"success": false})
			return
		}

		if err := store.SetAvailability(r.Context(), itemID, body.Available); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeJSON(w, status, map[string]bool{"success": false})
			return
		}

		if notifier != nil {
			state := "back on sale"
			if !body.Available {
				state = "sold out"
			}
			notifier.Notify(fmt.Sprintf("Menu item %d is %s", itemID, state), notify.SeverityInfo)
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleAddMenuItem(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}

		var body struct {
			Name     string `json:"name"`
			Price    string `json:"price"`
			Cost     string `json:"cost"`
			Category string `json:"category"`
			ImageURL string `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		// Same advisory checks the terminal runs before submitting.
		fieldErrs := validate.Check([]validate.Field{
			{Name: "name", Type: validate.TypeText, Value: body.Name, Required: true},
			{Name: "price", Type: validate.TypeNumber, Value: body.Price, Required: true},
			{Name: "cost", Type: validate.TypeNumber, Value: body.Cost, Required: true},
			{Name: "category", Type: validate.TypeText, Value: body.Category, Required: true},
		})
		if len(fieldErrs) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"errors":  fieldErrs,
			})
			return
		}

		price, _ := strconv.ParseFloat(body.Price, 64)
		cost, _ := strconv.ParseFloat(body.Cost, 64)

		it := Item{
			ShopID:   sess.ShopID(),
			Name:     body.Name,
			Price:    price,
			Cost:     cost,
			Category: body.Category,
			ImageURL: body.ImageURL,
		}
		id, err := store.Create(r.Context(), it)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		it.ItemID = id
		it.Available = true

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "item": it})
	}
}

func handleShopMenu(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := strconv.ParseInt(chi.URLParam(r, "shopID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid shop id", http.StatusBadRequest)
			return
		}

		items, err := store.ListAvailable(r.Context(), shopID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Customer view: keep purchase cost private to the shop.
		for i := range items {
			items[i].Cost = 0
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleMyMenu(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}

		items, err := store.ListAll(r.Context(), sess.ShopID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

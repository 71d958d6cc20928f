package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/notify"
	"github.com/sakchai-01/school-pos/internal/session"
)

// Notifier fans order events out to connected dashboards.
type Notifier interface {
	Notify(message string, severity notify.Severity) notify.Notification
}

// RegisterRoutes mounts the checkout and sales report endpoints.
func RegisterRoutes(r chi.Router, store *Store, sessions *session.Manager, notifier Notifier) {
	r.Post("/checkout", handleCheckout(store, sessions, notifier))
	r.Get("/api/sales_report", handleSalesReport(store, sessions))
	r.Get("/api/today_stats", handleTodayStats(store, sessions))
}

func handleCheckout(store *Store, sessions *session.Manager, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserStudent {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"success": false,
				"error":   "student login required",
			})
			return
		}

		result, err := store.Checkout(r.Context(), sess.StudentID(), sess.CartItems())
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInsufficientBalance):
				status = http.StatusBadRequest
			case errors.Is(err, ErrUnknownStudent):
				status = http.StatusForbidden
			}
			writeJSON(w, status, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}

		sess.ClearCart()

		if notifier != nil {
			notifier.Notify(
				fmt.Sprintf("Order placed by %s (%.2f)", sess.Name(), result.Total),
				notify.SeveritySuccess,
			)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"order_ids":   result.OrderIDs,
			"total":       result.Total,
			"new_balance": result.NewBalance,
		})
	}
}

// salesReport bundles everything the shop report page renders in one call.
type salesReport struct {
	Menu  []MenuSales  `json:"menu"`
	Daily []DailySales `json:"daily"`
	Today *DailyStats  `json:"today"`
}

func handleSalesReport(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}
		shopID := sess.ShopID()

		report, err := buildSalesReport(r, store, shopID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func buildSalesReport(r *http.Request, store *Store, shopID int64) (*salesReport, error) {
	menu, err := store.MenuSalesReport(r.Context(), shopID)
	if err != nil {
		return nil, err
	}
	daily, err := store.DailySalesReport(r.Context(), shopID)
	if err != nil {
		return nil, err
	}
	today, err := store.TodayStats(r.Context(), shopID)
	if err != nil {
		return nil, err
	}
	return &salesReport{Menu: menu, Daily: daily, Today: today}, nil
}

func handleTodayStats(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}

		stats, err := store.TodayStats(r.Context(), sess.ShopID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/order"
	"github.com/sakchai-01/school-pos/internal/session"
)

// RegisterRoutes mounts the report download endpoints.
func RegisterRoutes(r chi.Router, orders *order.Store, sessions *session.Manager) {
	r.Get("/sales_report.csv", handleCSV(orders, sessions))
	r.Get("/sales_report/print", handlePrintable(orders, sessions))
}

func handleCSV(orders *order.Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}

		rows, err := orders.MenuSalesReport(r.Context(), sess.ShopID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("sales_report_%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		// Headers are already written; a mid-stream error can only abort.
		_ = WriteCSV(w, rows)
	}
}

func handlePrintable(orders *order.Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)
		if sess == nil || sess.UserType() != session.UserShop {
			http.Error(w, "shop login required", http.StatusForbidden)
			return
		}

		menu, err := orders.MenuSalesReport(r.Context(), sess.ShopID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		daily, err := orders.DailySalesReport(r.Context(), sess.ShopID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		page, err := Printable(sess.Name(), menu, daily, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakchai-01/school-pos/internal/session"
)

// RegisterRoutes mounts login, shop listing and admin endpoints.
func RegisterRoutes(r chi.Router, store *Store, sessions *session.Manager) {
	r.Post("/student_login", handleStudentLogin(store, sessions))
	r.Post("/shop_login", handleShopLogin(store, sessions))
	r.Post("/admin_login", handleAdminLogin(store, sessions))
	r.Post("/logout", handleLogout(sessions))

	r.Get("/api/shops", handleListShops(store))

	r.Route("/api/students", func(r chi.Router) {
		r.Use(requireAdmin(sessions))
		r.Get("/", handleListStudents(store))
		r.Put("/{studentID}", handleUpdateStudent(store))
		r.Delete("/{studentID}", handleDeleteStudent(store))
	})
}

// loginResult is the shared login response shape.
type loginResult struct {
	Success bool    `json:"success"`
	Name    string  `json:"name,omitempty"`
	Balance float64 `json:"balance,omitempty"`
}

func handleStudentLogin(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			StudentID string `json:"student_id"`
			Password  string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, loginResult{})
			return
		}

		st, err := store.VerifyStudent(r.Context(), body.StudentID, body.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, loginResult{})
			return
		}

		sessions.GetOrCreate(w, r).SetStudent(st.StudentID, st.Name)
		writeJSON(w, http.StatusOK, loginResult{Success: true, Name: st.Name, Balance: st.Balance})
	}
}

func handleShopLogin(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ShopName string `json:"shop_name"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, loginResult{})
			return
		}

		sh, err := store.VerifyShop(r.Context(), body.ShopName, body.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, loginResult{})
			return
		}

		sessions.GetOrCreate(w, r).SetShop(sh.ShopID, sh.ShopName, sh.OwnerName)
		writeJSON(w, http.StatusOK, loginResult{Success: true, Name: sh.OwnerName})
	}
}

func handleAdminLogin(store *Store, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, loginResult{})
			return
		}

		a, err := store.VerifyAdmin(r.Context(), body.Username, body.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, loginResult{})
			return
		}

		sessions.GetOrCreate(w, r).SetAdmin(a.Username, a.Name)
		writeJSON(w, http.StatusOK, loginResult{Success: true, Name: a.Name})
	}
}

func handleLogout(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Destroy(w, r)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleListShops(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shops, err := store.ListShops(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, shops)
	}
}

func handleListStudents(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.ListStudents(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, students)
	}
}

func handleUpdateStudent(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")

		var body struct {
			Name     string  `json:"name"`
			Password string  `json:"password"`
			Balance  float64 `json:"balance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if body.Name == "" || body.Balance < 0 {
			http.Error(w, "name is required and balance must be non-negative", http.StatusBadRequest)
			return
		}

		err := store.UpdateStudent(r.Context(), studentID, body.Name, body.Password, body.Balance)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleDeleteStudent(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")

		err := store.DeleteStudent(r.Context(), studentID)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// requireAdmin rejects requests whose session is not an admin login.
func requireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := sessions.Get(r)
			if s == nil || s.UserType() != session.UserAdmin {
				http.Error(w, "admin login required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

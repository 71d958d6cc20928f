// Package session provides cookie-backed server sessions. Each session
// carries the logged-in identity and the pending cart, mirroring what the
// original terminals kept per browser session.
package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/sakchai-01/school-pos/internal/cart"
)

// CookieName identifies the session cookie.
const CookieName = "schoolpos_session"

// UserType distinguishes the three login roles.
type UserType string

const (
	UserStudent UserType = "student"
	UserShop    UserType = "shop"
	UserAdmin   UserType = "admin"
)

// Session is one terminal's server-side state.
type Session struct {
	ID string

	mu       sync.Mutex
	userType UserType
	userID   string // student_id, shop_id or admin_id depending on userType
	name     string
	shopID   int64
	items    []cart.Item
}

// SetStudent records a student login.
func (s *Session) SetStudent(studentID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userType = UserStudent
	s.userID = studentID
	s.name = name
}

// SetShop records a shop login.
func (s *Session) SetShop(shopID int64, shopName, ownerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userType = UserShop
	s.shopID = shopID
	s.userID = shopName
	s.name = ownerName
}

// SetAdmin records an admin login.
func (s *Session) SetAdmin(username, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userType = UserAdmin
	s.userID = username
	s.name = name
}

// UserType returns the logged-in role, or "" when anonymous.
func (s *Session) UserType() UserType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userType
}

// StudentID returns the logged-in student id, or "" for other roles.
func (s *Session) StudentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userType != UserStudent {
		return ""
	}
	return s.userID
}

// ShopID returns the logged-in shop id, or 0 for other roles.
func (s *Session) ShopID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userType != UserShop {
		return 0
	}
	return s.shopID
}

// Name returns the display name recorded at login.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// AddToCart merges the item into the session cart (quantities accumulate on
// a duplicate id) and returns the number of distinct entries.
func (s *Session) AddToCart(item cart.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ItemID == item.ItemID {
			s.items[i].Quantity += item.Quantity
			return len(s.items)
		}
	}
	s.items = append(s.items, item)
	return len(s.items)
}

// CartItems returns a copy of the session cart in insertion order.
func (s *Session) CartItems() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cart.Item, len(s.items))
	copy(out, s.items)
	return out
}

// CartTotal returns the sum of line subtotals.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// ClearCart empties the session cart after a successful checkout.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Manager tracks sessions by cookie. Sessions live in memory for the
// lifetime of the server process, like the original's per-browser sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the request's session, or nil when it has none.
func (m *Manager) Get(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[c.Value]
}

// GetOrCreate returns the request's session, creating one (and setting the
// cookie) if needed. Cart operations do not require a login, so anonymous
// sessions are allowed.
func (m *Manager) GetOrCreate(w http.ResponseWriter, r *http.Request) *Session {
	if s := m.Get(r); s != nil {
		return s
	}

	s := &Session{ID: uuid.New().String()}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Destroy removes the request's session and expires its cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return
	}

	m.mu.Lock()
	delete(m.sessions, c.Value)
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
)

// ErrRejected is returned when the server answers but reports failure.
var ErrRejected = errors.New("request rejected by server")

// AddResponse is the wire response for an add-to-cart call.
type AddResponse struct {
	Success   bool `json:"success"`
	CartCount int  `json:"cart_count"`
}

// ToggleResponse is the wire response for an availability toggle.
type ToggleResponse struct {
	Success bool `json:"success"`
}

// Client issues the POS server calls made on behalf of a terminal. It holds
// a cookie jar so the server session (and its cart) survives across calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL. No request timeout
// is applied; callers pass a context if they need one.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}
}

// AddToCart submits one item and returns the server-reported cart count.
func (c *Client) AddToCart(ctx context.Context, item Item) (int, error) {
	var resp AddResponse
	if err := c.post(ctx, "/add_to_cart", item, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("adding %s: %w", item.ItemID, ErrRejected)
	}
	return resp.CartCount, nil
}

// ToggleAvailability submits an on/off-sale change for a menu item.
func (c *Client) ToggleAvailability(ctx context.Context, itemID string, available bool) error {
	body := map[string]any{"item_id": itemID, "available": available}
	var resp ToggleResponse
	if err := c.post(ctx, "/toggle_availability", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("toggling %s: %w", itemID, ErrRejected)
	}
	return nil
}

// LoginResponse is the wire response for a student login.
type LoginResponse struct {
	Success bool    `json:"success"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// StudentLogin authenticates a student and establishes the server session.
func (c *Client) StudentLogin(ctx context.Context, studentID, password string) (*LoginResponse, error) {
	body := map[string]string{"student_id": studentID, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/student_login", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("logging in %s: %w", studentID, ErrRejected)
	}
	return &resp, nil
}

// Shop is a canteen shop as listed by the server.
type Shop struct {
	ShopID   int64  `json:"shop_id"`
	ShopName string `json:"shop_name"`
	ImageURL string `json:"image_url"`
}

// Shops lists the canteen shops.
func (c *Client) Shops(ctx context.Context) ([]Shop, error) {
	var shops []Shop
	if err := c.get(ctx, "/api/shops", &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// MenuItem is one orderable menu entry as listed by the server.
type MenuItem struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category"`
}

// Menu lists a shop's available items.
func (c *Client) Menu(ctx context.Context, shopID int64) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.get(ctx, fmt.Sprintf("/api/shops/%d/menu", shopID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CheckoutResponse is the wire response for a checkout call.
type CheckoutResponse struct {
	Success    bool    `json:"success"`
	NewBalance float64 `json:"new_balance"`
	OrderIDs   []int64 `json:"order_ids"`
	Error      string  `json:"error,omitempty"`
}

// Checkout places orders for the server-session cart and returns the new
// balance.
func (c *Client) Checkout(ctx context.Context) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.post(ctx, "/checkout", struct{}{}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		if resp.Error != "" {
			return nil, fmt.Errorf("checkout: %s: %w", resp.Error, ErrRejected)
		}
		return nil, fmt.Errorf("checkout: %w", ErrRejected)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%s returned status %d", req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

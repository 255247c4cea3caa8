package storeclient

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

// ErrNotLoggedIn is returned by operations that need an authenticated account.
var ErrNotLoggedIn = errors.New("not logged in")

// Session combines a Client with local State and implements the server-first
// policy: reads and mutations go to the server when possible, and degrade to
// the locally cached catalog and client-owned cart when it is not. Identity
// and checkout never fall back; those must be authoritative.
type Session struct {
	client *Client

	mu    sync.Mutex
	state State
}

// NewSession creates a Session over the given client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// State returns a snapshot of the current client state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoadProducts fetches a catalog page and caches the products locally for
// offline fallback.
func (s *Session) LoadProducts(ctx context.Context, q Query) (*Page, error) {
	page, err := s.client.Products(ctx, q)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state.Products = page.Products
	s.mu.Unlock()
	return page, nil
}

// Search asks the server first and falls back to filtering the cached
// catalog when the server cannot answer.
func (s *Session) Search(ctx context.Context, term string) []Product {
	if products, err := s.client.Search(ctx, term); err == nil {
		return products
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return filterProducts(s.state.Products, term)
}

// ByCategory asks the server first and falls back to the cached catalog.
func (s *Session) ByCategory(ctx context.Context, category string) []Product {
	if products, err := s.client.ByCategory(ctx, category); err == nil {
		return products
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByCategory(s.state.Products, category)
}

// Register creates an account. No local fallback.
func (s *Session) Register(ctx context.Context, username, email, phone, password string) error {
	return s.client.Register(ctx, username, email, phone, password)
}

// Login authenticates and stores the token and account in the session. No
// local fallback.
func (s *Session) Login(ctx context.Context, email, password string) error {
	u, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.User = u
	s.state.Token = token
	s.mu.Unlock()
	return nil
}

// Logout drops the token and account but keeps the cart and wishlist.
func (s *Session) Logout() {
	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.mu.Unlock()
}

// AddToCart applies the addition locally and, when logged in, also asks the
// server to validate it. A server failure does not undo the local change; the
// cart is client-owned and the server call is an advisory existence check.
func (s *Session) AddToCart(ctx context.Context, p Product, quantity int) {
	s.mu.Lock()
	token := s.state.Token
	s.state = s.state.AddItem(p, quantity)
	s.mu.Unlock()

	if token != "" {
		_ = s.client.AddToCart(ctx, token, p.ID, quantity)
	}
}

// SetQuantity updates a cart line locally.
func (s *Session) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	s.state = s.state.SetQuantity(productID, quantity)
	s.mu.Unlock()
}

// RemoveFromCart deletes a cart line locally.
func (s *Session) RemoveFromCart(productID string) {
	s.mu.Lock()
	s.state = s.state.RemoveItem(productID)
	s.mu.Unlock()
}

// ToggleWishlist flips a product's wishlist membership. Client-only.
func (s *Session) ToggleWishlist(productID string) {
	s.mu.Lock()
	s.state = s.state.ToggleWishlist(productID)
	s.mu.Unlock()
}

// Checkout places an order for the current cart. It requires a signed-in
// account and never falls back: the cart is cleared only after the server
// confirms the order, so a failed checkout loses nothing.
func (s *Session) Checkout(ctx context.Context, address Address, paymentMethod string) (*Order, error) {
	s.mu.Lock()
	token := s.state.Token
	cart := s.state.cloneCart()
	total := s.state.Total()
	s.mu.Unlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if len(cart) == 0 {
		return nil, errors.New("cart is empty")
	}

	items := make([]OrderItem, len(cart))
	for i, it := range cart {
		items[i] = OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}

	o, err := s.client.CreateOrder(ctx, token, items, total.InexactFloat64(), address, paymentMethod)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = s.state.ClearCart()
	s.mu.Unlock()
	return o, nil
}

// Orders fetches the signed-in user's order history.
func (s *Session) Orders(ctx context.Context) ([]Order, error) {
	s.mu.Lock()
	token := s.state.Token
	s.mu.Unlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return s.client.Orders(ctx, token)
}

// Package storeclient is a typed client for the storefront API with a local
// state layer. Mutations are sent to the server first; when the server is
// unreachable the state layer falls back to applying them locally so the
// shopping flow keeps working offline.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-faster/errors"
)

// Product is the catalog item as served by the API.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  float64           `json:"originalPrice"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images,omitempty"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	InStock        bool              `json:"inStock"`
	Featured       bool              `json:"featured"`
	Discount       int               `json:"discount"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Page is a paginated catalog listing.
type Page struct {
	Products    []Product `json:"products"`
	Total       int64     `json:"total"`
	Pages       int64     `json:"pages"`
	CurrentPage int64     `json:"currentPage"`
}

// User is the account shape returned by login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// OrderItem is one purchased line.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Address is a shipping destination.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Order is a placed order as returned by the API.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Products        []OrderItem `json:"products"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Query selects and orders a catalog listing.
type Query struct {
	Category string
	Search   string
	Sort     string
	Page     int64
	Limit    int64
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Client talks to the storefront API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the API at baseURL. A nil httpClient uses a
// default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

// Products fetches a catalog page.
func (c *Client) Products(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		params.Set("page", strconv.FormatInt(q.Page, 10))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.FormatInt(q.Limit, 10))
	}

	path := "/api/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single catalog item by id.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Search fetches catalog items matching term.
func (c *Client) Search(ctx context.Context, term string) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/search/"+url.PathEscape(term), "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ByCategory fetches catalog items in a category.
func (c *Client) ByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/category/"+url.PathEscape(category), "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Featured fetches the featured catalog items.
func (c *Client) Featured(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/featured", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, phone, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, nil)
}

// Login authenticates and returns the account and its access token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// AddToCart asks the server to validate a cart addition.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) error {
	return c.do(ctx, http.MethodPost, "/api/cart/add", token, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}, nil)
}

// CreateOrder places an order for the given items.
func (c *Client) CreateOrder(ctx context.Context, token string, items []OrderItem, total float64, address Address, paymentMethod string) (*Order, error) {
	var resp struct {
		Order Order `json:"order"`
	}
	err := c.do(ctx, http.MethodPost, "/api/orders", token, map[string]any{
		"products":        items,
		"total":           total,
		"shippingAddress": address,
		"paymentMethod":   paymentMethod,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// Orders fetches the authenticated user's order history.
func (c *Client) Orders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

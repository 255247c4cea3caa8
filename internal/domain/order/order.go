package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending is the only order status in this scope: orders are created
// pending and have no further lifecycle.
const StatusPending = "pending"

// Order is a placed order referencing the buying user and the purchased
// products with their price at purchase time.
type Order struct {
	ID              string
	UserID          string
	Items           []Item
	Total           decimal.Decimal
	Status          string
	ShippingAddress Address
	PaymentMethod   string
	CreatedAt       time.Time
}

// Item is a single order line. Price is the unit price captured when the
// order was placed, not a reference to the live catalog price.
type Item struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Address is the shipping destination attached to an order.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) (string, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

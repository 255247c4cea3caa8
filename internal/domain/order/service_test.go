package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmart/storefront/internal/domain/product"
)

type mockProductRepo struct {
	product.Repository

	byID   map[string]*product.Product
	getErr error
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

type mockOrderRepo struct {
	lastOrder *Order
	orders    []Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.lastOrder = o
	return "order-1", nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, _ string) ([]Order, error) {
	return m.orders, m.err
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	byID := make(map[string]*product.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return &mockProductRepo{byID: byID}
}

func testProduct(id, price string) product.Product {
	return product.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
	}
}

func TestCheckout(t *testing.T) {
	p1 := testProduct("p1", "100")
	p2 := testProduct("p2", "50")

	tests := []struct {
		name      string
		items     []Item
		wantTotal string
		wantErr   error
	}{
		{
			name: "two lines total",
			items: []Item{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 1},
			},
			wantTotal: "250",
		},
		{
			name:      "single line",
			items:     []Item{{ProductID: "p2", Quantity: 3}},
			wantTotal: "150",
		},
		{
			name:    "empty cart rejected",
			items:   nil,
			wantErr: ErrEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderRepo{}
			svc := NewService(newProductRepo(p1, p2), orders)

			o, err := svc.Checkout(context.Background(), CheckoutRequest{
				UserID:        "u1",
				Items:         tt.items,
				PaymentMethod: "cod",
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "order-1", o.ID)
			assert.Equal(t, "u1", o.UserID)
			assert.Equal(t, StatusPending, o.Status)
			assert.True(t, o.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", o.Total, tt.wantTotal)
			require.NotNil(t, orders.lastOrder)
		})
	}
}

func TestCheckoutPricesFromCatalog(t *testing.T) {
	// Client-submitted prices are ignored: the catalog price at checkout time
	// is what gets captured on the order line.
	p := testProduct("p1", "90")
	orders := &mockOrderRepo{}
	svc := NewService(newProductRepo(p), orders)

	o, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: "u1",
		Items:  []Item{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(90)))
	assert.True(t, o.Total.Equal(decimal.NewFromInt(90)))
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc := NewService(newProductRepo(), &mockOrderRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: "u1",
		Items:  []Item{{ProductID: "ghost", Quantity: 1}},
	})

	var pnf *ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "ghost", pnf.ProductID)
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	p := testProduct("p1", "10")
	svc := NewService(newProductRepo(p), &mockOrderRepo{})

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: "u1",
		Items:  []Item{{ProductID: "p1", Quantity: 0}},
	})

	var iq *InvalidQuantityError
	require.ErrorAs(t, err, &iq)
}

func TestCheckoutRepoError(t *testing.T) {
	p := testProduct("p1", "10")
	orders := &mockOrderRepo{err: errors.New("db down")}
	svc := NewService(newProductRepo(p), orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: "u1",
		Items:  []Item{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)
}

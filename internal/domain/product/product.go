package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Price and
// OriginalPrice are decimal to keep discount math exact; OriginalPrice is
// expected to be >= Price so the displayed discount is never negative.
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  decimal.Decimal
	Category       string
	Image          string
	Images         []string
	Rating         float64
	Reviews        int
	InStock        bool
	Featured       bool
	Specifications map[string]string
	CreatedAt      time.Time
}

// DiscountPercent returns the rounded percentage discount implied by
// OriginalPrice vs Price. It returns 0 when there is no positive discount or
// when OriginalPrice is not positive.
func (p Product) DiscountPercent() int {
	if !p.OriginalPrice.IsPositive() {
		return 0
	}
	diff := p.OriginalPrice.Sub(p.Price)
	if !diff.IsPositive() {
		return 0
	}
	pct := diff.Div(p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// Page is one page of catalog query results.
type Page struct {
	Products    []Product
	Total       int64
	Pages       int64
	CurrentPage int64
}

// Repository defines catalog persistence operations. Read operations serve
// the public API; the mutating ones back the admin endpoints.
type Repository interface {
	Find(ctx context.Context, q Query) (*Page, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Featured(ctx context.Context, limit int64) ([]Product, error)
	Insert(ctx context.Context, p *Product) (string, error)
	Update(ctx context.Context, id string, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
}

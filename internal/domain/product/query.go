package product

// Sort keys accepted by the catalog query. Anything else falls back to
// SortNewest.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

const (
	// DefaultLimit is the page size used when the client supplies none.
	DefaultLimit = 20
	// MaxLimit bounds the page size to keep a single request from scanning
	// the whole collection.
	MaxLimit = 100
)

// Query describes a catalog page request. Category and Search are
// case-insensitive substring filters; Search matches name, description, and
// category.
type Query struct {
	Category string
	Search   string
	Sort     string
	Page     int64
	Limit    int64
}

// Normalize coerces out-of-range values instead of rejecting them: page
// defaults to 1, limit to DefaultLimit, and limit is capped at MaxLimit.
// Unrecognized sort keys become SortNewest.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	switch q.Sort {
	case SortPriceLow, SortPriceHigh, SortRating, SortNewest:
	default:
		q.Sort = SortNewest
	}
	return q
}

// Skip returns the number of documents to skip for the normalized query.
func (q Query) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

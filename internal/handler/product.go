package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/techmart/storefront/internal/domain/product"
)

// productResponse is the wire shape of a catalog item. Discount is derived,
// never stored.
type productResponse struct {
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
	CreatedAt      time.Time         `json:"createdAt"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.InexactFloat64(),
		OriginalPrice:  p.OriginalPrice.InexactFloat64(),
		Category:       p.Category,
		Image:          p.Image,
		Images:         p.Images,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		InStock:        p.InStock,
		Featured:       p.Featured,
		Discount:       p.DiscountPercent(),
		Specifications: p.Specifications,
		CreatedAt:      p.CreatedAt,
	}
}

func toProductResponses(products []product.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// productPageResponse is the paginated catalog listing.
type productPageResponse struct {
	Products    []productResponse `json:"products"`
	Total       int64             `json:"total"`
	Pages       int64             `json:"pages"`
	CurrentPage int64             `json:"currentPage"`
}

// queryFromRequest builds a catalog query from URL parameters. Non-numeric
// page and limit values are coerced to defaults rather than rejected.
func queryFromRequest(r *http.Request) product.Query {
	params := r.URL.Query()

	page, _ := strconv.ParseInt(params.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(params.Get("limit"), 10, 64)

	return product.Query{
		Category: params.Get("category"),
		Search:   params.Get("search"),
		Sort:     params.Get("sort"),
		Page:     page,
		Limit:    limit,
	}.Normalize()
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.Find(r.Context(), queryFromRequest(r))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, productPageResponse{
		Products:    toProductResponses(page.Products),
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
	})
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*p))
}

// ProductsByCategory handles GET /api/products/category/{category}.
func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponses(products))
}

// SearchProducts handles GET /api/products/search/{query}.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Search(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponses(products))
}

const featuredLimit = 8

// FeaturedProducts handles GET /api/products/featured.
func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Featured(r.Context(), featuredLimit)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponses(products))
}

// productRequest is the admin payload for creating or updating a product.
type productRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  float64           `json:"originalPrice"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	InStock        *bool             `json:"inStock"`
	Featured       bool              `json:"featured"`
	Specifications map[string]string `json:"specifications"`
}

func (req productRequest) toDomain() product.Product {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	return product.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          decimal.NewFromFloat(req.Price),
		OriginalPrice:  decimal.NewFromFloat(req.OriginalPrice),
		Category:       req.Category,
		Image:          req.Image,
		Images:         req.Images,
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		InStock:        inStock,
		Featured:       req.Featured,
		Specifications: req.Specifications,
	}
}

// CreateProduct handles POST /api/admin/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Name == "" || req.Price <= 0 {
		respondMessage(w, http.StatusBadRequest, "name and positive price required")
		return
	}

	p := req.toDomain()
	id, err := h.products.Insert(r.Context(), &p)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	p.ID = id

	respondJSON(w, http.StatusCreated, struct {
		Message string          `json:"message"`
		Product productResponse `json:"product"`
	}{"Product created successfully", toProductResponse(p)})
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	p := req.toDomain()
	updated, err := h.products.Update(r.Context(), mux.Vars(r)["id"], &p)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		Product productResponse `json:"product"`
	}{"Product updated successfully", toProductResponse(*updated)})
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

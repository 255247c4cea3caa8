package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/techmart/storefront/internal/domain/product"
)

type cartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart handles POST /api/cart/add. The cart itself is client-owned and
// ephemeral; the server only validates the product and acknowledges, giving
// the client's server-first write policy an authoritative existence check.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Quantity <= 0 {
		respondMessage(w, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	if _, err := h.products.GetByID(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondMessage(w, http.StatusOK, "Product added to cart")
}

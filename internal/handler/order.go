package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/techmart/storefront/internal/domain/order"
)

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type addressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type createOrderRequest struct {
	Products        []orderItemRequest `json:"products"`
	Total           float64            `json:"total"`
	ShippingAddress addressPayload     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

type orderItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Products        []orderItemResponse `json:"products"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress addressPayload      `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func toOrderResponse(o order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		}
	}
	return orderResponse{
		ID:       o.ID,
		UserID:   o.UserID,
		Products: items,
		Total:    o.Total.InexactFloat64(),
		Status:   o.Status,
		ShippingAddress: addressPayload{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

// CreateOrder handles POST /api/orders. The submitted total is advisory: the
// checkout service reprices every line from the catalog.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	items := make([]order.Item, len(req.Products))
	for i, p := range req.Products {
		items[i] = order.Item{ProductID: p.ProductID, Quantity: p.Quantity}
	}

	o, err := h.orders.Checkout(r.Context(), order.CheckoutRequest{
		UserID: claims.UserID,
		Items:  items,
		ShippingAddress: order.Address{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Country: req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var pnf *order.ProductNotFoundError
		var iq *order.InvalidQuantityError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			respondMessage(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &iq):
			respondMessage(w, http.StatusBadRequest, iq.Error())
		case errors.As(err, &pnf):
			respondMessage(w, http.StatusNotFound, pnf.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		Message string        `json:"message"`
		Order   orderResponse `json:"order"`
	}{"Order created successfully", toOrderResponse(*o)})
}

// ListOrders handles GET /api/orders, returning the authenticated user's
// orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	orders, err := h.orders.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	respondJSON(w, http.StatusOK, out)
}

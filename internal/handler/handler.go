// Package handler exposes the storefront API over HTTP: routing, JSON
// encoding, authentication, and the mapping from domain errors to status
// codes.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/techmart/storefront/internal/domain/auth"
	"github.com/techmart/storefront/internal/domain/order"
	"github.com/techmart/storefront/internal/domain/product"
	"github.com/techmart/storefront/internal/domain/user"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// UploadDir is where uploaded images are stored and served from.
	UploadDir string
	// MaxUploadBytes bounds a single uploaded file. Zero means the 5 MiB
	// default.
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 5 << 20

// Handler implements the storefront HTTP API, delegating business logic to
// the injected domain services and repositories.
type Handler struct {
	products  product.Repository
	users     *user.Service
	orders    *order.Service
	tokens    *auth.Tokens
	uploadDir string
	maxUpload int64
}

// New constructs a Handler with the required domain dependencies.
func New(cfg Config, products product.Repository, users *user.Service, orders *order.Service, tokens *auth.Tokens) *Handler {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Handler{
		products:  products,
		users:     users,
		orders:    orders,
		tokens:    tokens,
		uploadDir: cfg.UploadDir,
		maxUpload: maxUpload,
	}
}

// messageResponse is the generic {"message": ...} body used for errors and
// simple acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, messageResponse{Message: msg})
}

// respondInternal hides the failure behind a generic message; the cause is
// logged server-side only.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	respondMessage(w, http.StatusInternalServerError, "server error")
}

package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/techmart/storefront/internal/domain/auth"
)

// Health handles GET /api/health, the simple liveness answer the storefront
// client polls. The richer /livez and /readyz probes live outside the router.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}{"OK", time.Now().UTC()})
}

// Router assembles the API routes. Specific product paths are registered
// before the /{id} catch-all so "featured" is never parsed as an id.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// Public catalog.
	api.HandleFunc("/products/featured", h.FeaturedProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{category}", h.ProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/search/{query}", h.SearchProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)

	// Identity.
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	// Authenticated cart and orders.
	api.Handle("/cart/add", h.Authenticate(http.HandlerFunc(h.AddToCart))).Methods(http.MethodPost)
	api.Handle("/orders", h.Authenticate(http.HandlerFunc(h.CreateOrder))).Methods(http.MethodPost)
	api.Handle("/orders", h.Authenticate(http.HandlerFunc(h.ListOrders))).Methods(http.MethodGet)

	// Uploads.
	api.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Admin product mutations: authenticated, then checked against the
	// product policy.
	admin := api.PathPrefix("/admin/products").Subrouter()
	admin.Use(h.Authenticate, h.Authorize(auth.ResourceProducts))
	admin.HandleFunc("", h.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/{id}", h.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/{id}", h.DeleteProduct).Methods(http.MethodDelete)

	// Uploaded images are served back statically.
	if h.uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusNotFound, "Route not found")
	})

	return r
}

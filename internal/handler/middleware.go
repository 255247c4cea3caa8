package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/techmart/storefront/internal/domain/auth"
)

// claimsKey is the context key under which verified token claims are stored.
type claimsKey struct{}

// ClaimsFromContext returns the verified claims attached by Authenticate, or
// nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// Authenticate verifies the Authorization bearer token and attaches its
// claims to the request context. A missing token yields 401; a malformed,
// invalid, or expired one yields 403.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondMessage(w, http.StatusUnauthorized, "access token required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondMessage(w, http.StatusForbidden, "invalid token")
			return
		}

		claims, err := h.tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				respondMessage(w, http.StatusForbidden, "token expired")
				return
			}
			respondMessage(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize gates a route on the authorization policy for the given
// resource. The action is derived from the HTTP method. Must run after
// Authenticate.
func (h *Handler) Authorize(resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				respondMessage(w, http.StatusUnauthorized, "access token required")
				return
			}
			if !auth.Allowed(resource, actionForMethod(r.Method), claims.Role) {
				respondMessage(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func actionForMethod(method string) string {
	switch method {
	case http.MethodPost:
		return auth.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return auth.ActionUpdate
	case http.MethodDelete:
		return auth.ActionDelete
	default:
		return auth.ActionRead
	}
}

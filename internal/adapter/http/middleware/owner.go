package middleware

import (
	"context"
	"net/http"

	"github.com/cashbookhq/cashbook/internal/usecase"
)

// OwnerIDHeader carries the owner every request is scoped to. Session and
// identity management live with the surrounding application; this service
// only enforces the injected authorization policy.
const OwnerIDHeader = "X-Owner-ID"

// ContextKey is the type for context keys
type ContextKey string

// OwnerContextKey is the context key for the authorized owner ID.
const OwnerContextKey ContextKey = "owner_id"

// OwnerScope extracts the owner ID header, runs it through the authorizer,
// and stores it in the request context.
func OwnerScope(authorizer usecase.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := r.Header.Get(OwnerIDHeader)
			if ownerID == "" {
				http.Error(w, "missing owner id header", http.StatusBadRequest)
				return
			}

			if err := authorizer.Authorize(r.Context(), ownerID); err != nil {
				http.Error(w, "not authorized for owner", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), OwnerContextKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerIDFromContext returns the authorized owner ID, or "" when the request
// did not pass through OwnerScope.
func OwnerIDFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(OwnerContextKey).(string)

	return ownerID
}

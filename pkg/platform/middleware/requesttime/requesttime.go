// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request use the same "now" timestamp,
// keeping submission dates, issuance dates, and log timestamps consistent.
package requesttime

import (
	"net/http"
	"time"

	"oscahub/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context for the rest of the chain.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

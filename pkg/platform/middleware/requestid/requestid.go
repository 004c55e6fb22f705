// Package requestid assigns each request a correlation ID, honoring an
// inbound X-Request-ID when a trusted proxy already set one.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"oscahub/pkg/requestcontext"
)

const Header = "X-Request-ID"

// Middleware injects a request ID into the context and echoes it in the
// response so clients can correlate logs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

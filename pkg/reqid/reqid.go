// Package reqid tags each copshop API call with an ID. The ID is echoed in
// the X-Request-ID response header and appears as request_id on every log
// line written through logger.WithCtx, so a failed checkout can be traced
// from the storefront's error report to the payment and order writes.
//
//	id := reqid.FromCtx(r.Context())
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

const Header = "X-Request-ID"

// maxLen caps a client-supplied ID.
const maxLen = 128

// New returns a random UUIDv4.
func New() string {
	return uuid.NewString()
}

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the ID stored in ctx, or "" outside a request.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses the caller's X-Request-ID when it is present and at
// most maxLen bytes, and otherwise mints a UUID.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxLen {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}

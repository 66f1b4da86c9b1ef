package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akil18/cop-shop-server-side/pkg/auth"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/response"
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Auth guards a route with a bearer token. A request without an
// Authorization header gets 401; any header that does not carry a valid
// token gets 403. Either way the wrapped handler never runs.
func Auth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Error(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.Error(w, http.StatusForbidden, "forbidden access")
				return
			}

			claims, err := v.Validate(strings.TrimSpace(token))
			if err != nil {
				logger.WithCtx(r.Context()).Debug("auth: token rejected", "error", err)
				response.Error(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// ClaimsFromCtx returns the claims Auth attached to the request.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	return auth.FromCtx(ctx)
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/response"
)

// Recovery turns a panicking handler into the API's standard 500 envelope,
// {"status":500,"message":"Internal Server Error"}. The panic value and
// stack go to the request log only. It sits inside Logger so the 500 is
// still counted and logged with its request_id.
//
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error("panic in handler",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.Error(w, http.StatusInternalServerError, apperr.SafeInternalMessage)
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/reqid"
)

// recorder remembers the status and body size a handler wrote.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *recorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Logger writes one access line per API call and hands handlers a logger
// already tagged with the request_id, so logger.WithCtx(ctx) in services
// and repositories carries it too. It needs reqid.Middleware ahead of it.
//
// The route field is the matched pattern ("/orders/{email}") so buyer
// emails and ObjectIDs stay out of it. It is empty for unmatched paths.
// Server errors log at ERROR, everything else at INFO.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		rw := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		level := slog.LevelInfo
		if rw.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		reqLog.Log(r.Context(), level, "request",
			"method", r.Method,
			"route", route,
			"status", rw.status,
			"bytes", rw.bytes,
			"duration", time.Since(start),
			"ip", r.RemoteAddr,
		)
	})
}

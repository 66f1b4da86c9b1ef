package app

import (
	"net/http"
	"time"

	"github.com/akil18/cop-shop-server-side/app/routes"
	"github.com/akil18/cop-shop-server-side/config"
	"github.com/akil18/cop-shop-server-side/pkg/metrics"
	"github.com/akil18/cop-shop-server-side/pkg/middleware"
	"github.com/akil18/cop-shop-server-side/pkg/reqid"
	"github.com/akil18/cop-shop-server-side/pkg/response"
	"github.com/akil18/cop-shop-server-side/pkg/router"
)

// Router builds the route table with the global middleware stack applied.
func (a *Application) Router() *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics for total latency
	//  2. Request ID before anything logs
	//  3. Logger stores the tagged logger in the request context
	//  4. Recovery turns panics into a 500 envelope
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins()...)))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Server is up")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Deps{
		Store:            a.Store,
		Cache:            a.Cache,
		CategoryCacheTTL: config.CategoryCacheTTL(),
		Signer:           a.Signer,
		Processor:        a.Processor,
	})
	return r
}

// Handler returns the root http.Handler.
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

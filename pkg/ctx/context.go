// Package ctx provides the request context copshop handlers receive.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context and returns after writing through it:
//
//	func (pc *ProductController) Advertise(c *ctx.Context) {
//	    id, err := store.ParseID(c.Param("id"))
//	    if err != nil {
//	        c.Fail(apperr.BadRequest("invalid product id"))
//	        return
//	    }
//	    ...
//	    c.JSON(http.StatusOK, res)
//	}
//
//	// Register with ctx.Wrap:
//	r.Put("/products/{id}", "products.advertise", ctx.Wrap(pc.Advertise), authMW)
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/bind"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int // written status code (0 = not written yet)
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/orders/{email}" → c.Param("email")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// HasQuery reports whether key appears in the query string, even empty.
func (c *Context) HasQuery(key string) bool {
	return c.R.URL.Query().Has(key)
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Per-request store ────────────────────────────────────────────────────────

// Set stores a value in the per-request key-value store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "" if absent/wrong type.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest. On failure it sends a 400 and
// returns false.
//
//	var order models.Order
//	if !c.BindJSON(&order) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	if err := bind.JSON(c.R, dest); err != nil {
		c.Fail(apperr.BadRequest(err.Error()))
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// OK writes v with 200.
func (c *Context) OK(v any) {
	c.JSON(http.StatusOK, v)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// Fail maps err to its status and client-safe message. Server-side faults
// are logged with the request id; their cause never reaches the client.
func (c *Context) Fail(err error) {
	code := apperr.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"status", code,
			"error", err,
		)
	}
	c.Error(code, apperr.Message(err))
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	c.status = code
	fmt.Fprintf(c.W, format, args...)
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{email}", "orders.byBuyer", ok)
	r.Get("/orders/payment/{id}", "orders.show", ok)

	path, found := r.Path("orders.show")
	require.True(t, found)
	assert.Equal(t, "/orders/payment/{id}", path)

	u, err := r.URL("orders.byBuyer", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/a@b.c", u)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)
	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestMethodsDispatch(t *testing.T) {
	r := router.New()
	r.Put("/products/{id}", "products.advertise", ok)
	r.Delete("/reportedItems/{id}", "reported.destroy", ok)

	for _, tc := range []struct {
		method, path string
		code         int
	}{
		{http.MethodPut, "/products/1", http.StatusOK},
		{http.MethodDelete, "/reportedItems/1", http.StatusOK},
		{http.MethodGet, "/products/1", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.code, rec.Code, tc.method+" "+tc.path)
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	admin := r.Group("/admin", mw("group"))
	admin.Put("/users/{id}", "admin.verify", ok, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/users/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestRoutesTableIsSorted(t *testing.T) {
	r := router.New()
	r.Post("/users", "users.store", ok)
	r.Get("/buyers", "users.buyers", ok)
	r.Get("/users", "", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: "GET", Path: "/buyers", Name: "users.buyers"}, routes[0])
	assert.Equal(t, "GET", routes[1].Method)
	assert.Equal(t, "POST", routes[2].Method)
}

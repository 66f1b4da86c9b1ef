package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	appctx "github.com/akil18/cop-shop-server-side/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.OK(map[string]any{"isAdmin": true})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isAdmin":true}`, rec.Body.String())
}

func TestParamAndQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/{email}", appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "b@shop.test", c.Param("email"))
		assert.Equal(t, "x", c.Query("q"))
		assert.True(t, c.HasQuery("empty"))
		assert.False(t, c.HasQuery("missing"))
		c.String(http.StatusOK, "ok")
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/b@shop.test?q=x&empty=", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSetAndGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Set("email", "a@b.c")
		assert.Equal(t, "a@b.c", c.GetString("email"))
		_, ok := c.Get("missing")
		assert.False(t, ok)
	})(rec, req)
}

func TestBindJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"lamp","extra":1}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input map[string]any
		require.True(t, c.BindJSON(&input))
		assert.Equal(t, "lamp", input["title"])
	})(rec, req)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	appctx.Wrap(func(c *appctx.Context) {
		var input map[string]any
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}

func TestFail(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{apperr.NotFound("order not found"), http.StatusNotFound, `{"status":404,"message":"order not found"}`},
		{errors.New("socket closed"), http.StatusInternalServerError, `{"status":500,"message":"Internal Server Error"}`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		appctx.Wrap(func(c *appctx.Context) { c.Fail(tc.err) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, tc.code, rec.Code)
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/app"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

func TestBootWithMemoryBackends(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "memory")

	a, err := app.Boot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a.Store)
	require.NotNil(t, a.Cache)
	require.NotNil(t, a.Signer)
	require.NotNil(t, a.Processor)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is up", rec.Body.String())

	assert.NoError(t, a.Close(context.Background()))
	// Closing twice is a no-op.
	assert.NoError(t, a.Close(context.Background()))
}

func TestRouterListsAPIRoutes(t *testing.T) {
	a := app.New(store.NewMemory(), nil, nil, nil)
	names := map[string]bool{}
	for _, ri := range a.Router().Routes() {
		names[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /metrics",
		"GET /categories/{id}",
		"PUT /products/{id}",
		"POST /payments",
		"PUT /admin/users/{id}",
		"GET /jwt",
	} {
		assert.True(t, names[want], want)
	}
}


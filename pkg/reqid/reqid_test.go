package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/reqid"
)

func serve(t *testing.T, header string) (string, string) {
	t.Helper()
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(reqid.Header)
}

func TestGeneratesUUID(t *testing.T) {
	seen, echoed := serve(t, "")

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, echoed)
}

func TestHonoursUpstreamID(t *testing.T) {
	seen, echoed := serve(t, "gateway-42")

	assert.Equal(t, "gateway-42", seen)
	assert.Equal(t, "gateway-42", echoed)
}

func TestReplacesOversizedID(t *testing.T) {
	seen, _ := serve(t, strings.Repeat("x", 500))

	assert.NotEqual(t, strings.Repeat("x", 500), seen)
	assert.Empty(t, reqid.FromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/response"
)

func TestOKWritesRawBody(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, []string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"conflict", apperr.Conflict("Order already exists"), http.StatusConflict, `{"status":409,"message":"Order already exists"}`},
		{"internal", errors.New("dial tcp: refused"), http.StatusInternalServerError, `{"status":500,"message":"Internal Server Error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.FromError(rec, tc.err)

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestShorthands(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Forbidden(rec)
	assert.JSONEq(t, `{"status":403,"message":"Forbidden"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.Unauthorized(rec)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

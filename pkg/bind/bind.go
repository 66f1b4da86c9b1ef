// Package bind decodes an HTTP request body into a value.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/akil18/cop-shop-server-side/config"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body as JSON into dest. The body is capped at
// MAX_BODY_BYTES (default 4 MB). Only syntax and size are checked; the
// document's fields are taken as sent.
func JSON(r *http.Request, dest any) error {
	return JSONLimit(r, dest, config.MaxBodyBytes())
}

// JSONLimit is JSON with an explicit byte cap.
func JSONLimit(r *http.Request, dest any, limit int64) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return nil
}

// Package response writes JSON bodies.
//
// Successful results are written unwrapped (the store acknowledgement or the
// documents themselves). Failures use a small envelope:
//
//	{"status":404,"message":"product not found"}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK sends a 200 with v as the body.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Error sends a JSON error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Status: status, Message: message})
}

// FromError maps err to its status and client-safe message.
func FromError(w http.ResponseWriter, err error) {
	status := apperr.StatusCode(err)
	Error(w, status, apperr.Message(err))
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// Package response provides shared JSON response helpers for HTTP handlers.
//
// Every endpoint answers with the same envelope:
//
//	{"message": "...", "data": ..., "error": ...}
//
// where error is an empty object on success and a detail string on failure.
// Existing clients depend on this exact shape.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard API response envelope.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response. A nil data omits the data key entirely.
func OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Message: message, Data: data, Error: struct{}{}})
}

// Fail writes an error response with the given status, message, and detail.
func Fail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Envelope{Message: message, Error: detail})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message, detail string) {
	Fail(w, http.StatusBadRequest, message, detail)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message, detail string) {
	Fail(w, http.StatusUnauthorized, message, detail)
}

// Forbidden writes a 403 response.
func Forbidden(w http.ResponseWriter, message, detail string) {
	Fail(w, http.StatusForbidden, message, detail)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message, "Not Found")
}

// InternalError writes a 500 response carrying the underlying error text.
func InternalError(w http.ResponseWriter, message string, err error) {
	detail := "internal server error"
	if err != nil {
		detail = err.Error()
	}
	Fail(w, http.StatusInternalServerError, message, detail)
}

// Package response provides the standard API response envelope
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError represents an API error
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Writer writes enveloped responses for one request
type Writer struct {
	w         http.ResponseWriter
	requestID string
}

// NewWriter creates a response writer bound to a request id
func NewWriter(w http.ResponseWriter, requestID string) *Writer {
	return &Writer{w: w, requestID: requestID}
}

// Success writes a 200 response
func (rw *Writer) Success(data interface{}) {
	rw.writeJSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	})
}

// Error writes an error response with the given status
func (rw *Writer) Error(status int, code, message string) {
	rw.writeJSON(status, APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	})
}

// NotFound writes a 404 response
func (rw *Writer) NotFound(message string) {
	rw.Error(http.StatusNotFound, "not_found", message)
}

// BadRequest writes a 400 response
func (rw *Writer) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, "bad_request", message)
}

// InternalError writes a 500 response
func (rw *Writer) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, "internal_error", message)
}

func (rw *Writer) writeJSON(status int, payload APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(status)
	_ = json.NewEncoder(rw.w).Encode(payload)
}

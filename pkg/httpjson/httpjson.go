// Package httpjson writes the service's JSON response envelope.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope shared by every JSON endpoint. Success payloads embed
// it and add their own fields.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Fail writes {success:false, message, error?}.
func Fail(w http.ResponseWriter, status int, message, detail string) {
	Write(w, status, Response{Success: false, Message: message, Error: detail})
}

// OK writes {success:true, message}.
func OK(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, Response{Success: true, Message: message})
}

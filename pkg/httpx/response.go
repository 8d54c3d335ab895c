package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON response body. Success responses carry Data;
// failures carry a human-readable Error and a machine-readable Code.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// WriteData writes a success envelope with the given status code.
func WriteData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, Envelope{Success: true, Data: data})
}

// WriteError writes a failure envelope. The message is what the caller sees;
// keep internal detail out of it.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message, Code: code})
}

// WriteFieldErrors writes a 400 failure envelope carrying field-keyed
// validation messages in Data.
func WriteFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Error:   "validation failed",
		Code:    "validation_error",
		Data:    map[string]any{"fields": fields},
	})
}

// WriteJSON writes v as-is with the given status code. Most handlers should
// prefer the envelope helpers; health probes use this directly.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	writeJSON(w, code, v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache prevents caching of sensitive responses like session tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

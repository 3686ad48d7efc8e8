package httpapi

import (
	"encoding/json"
	"net/http"

	dErrors "attestor/pkg/domain-errors"
)

// envelope matches the response shape of the public API: every body carries
// success, and exactly one of data / error / message.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	writeJSON(w, dErrors.ToHTTPStatus(code), envelope{
		Success: false,
		Error:   dErrors.MessageOf(err),
	})
}

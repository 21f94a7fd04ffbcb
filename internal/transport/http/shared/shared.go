// Package shared centralizes JSON envelope helpers so every handler
// translates domain errors the same way.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "healthledger/pkg/domain-errors"
)

// WriteError maps a domain error to its HTTP status and writes the error
// envelope. Error kinds are surfaced verbatim, never reinterpreted.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

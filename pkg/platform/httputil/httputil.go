// Package httputil keeps JSON encoding and error translation out of handlers
// so the transport layer stays thin.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "mortgageledger/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Field            string `json:"field,omitempty"`
}

// WriteError translates a domain error into an HTTP response. Internal errors
// deliberately omit the description so infrastructure details never leak to
// clients.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.HTTPStatus(err)
	body := errorBody{Error: string(dErrors.CodeOf(err))}
	if status != http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.ErrorDescription = de.Message
			body.Field = de.Field
		} else {
			body.ErrorDescription = err.Error()
		}
	}
	WriteJSON(w, status, body)
}

// Decode decodes a JSON request body into dst, translating failures into a
// validation error ready for WriteError.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "request body must be valid JSON")
	}
	return nil
}

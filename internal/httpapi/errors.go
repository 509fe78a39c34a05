package httpapi

import (
	"encoding/json"
	"net/http"

	"gulfjobs-web/internal/apply"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// ValidationError is APIError plus the per-field messages.
type ValidationError struct {
	APIError
	Fields apply.FieldErrors `json:"fields"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newAPIError(r *http.Request, code, message string) APIError {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	return e
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, newAPIError(r, code, message))
}

func WriteValidationError(w http.ResponseWriter, r *http.Request, fields apply.FieldErrors) {
	WriteJSON(w, http.StatusUnprocessableEntity, ValidationError{
		APIError: newAPIError(r, "validation_failed", apply.InvalidMessage),
		Fields:   fields,
	})
}

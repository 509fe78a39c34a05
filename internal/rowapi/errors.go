package rowapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the row API.
type Error struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("rowapi: status %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("rowapi: status %d: %s", e.Status, msg)
}

// Temporary reports whether a later identical request might succeed;
// backend.Temporary reads it for failure logs.
func (e *Error) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

func parseError(status int, body []byte) error {
	e := &Error{Status: status}
	if err := json.Unmarshal(body, e); err != nil || (e.Message == "" && e.Code == "") {
		e.Message = strings.TrimSpace(string(body))
	}
	e.Status = status
	return e
}

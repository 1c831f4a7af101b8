package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx reply from the backend.
type APIError struct {
	StatusCode int
	// Message is the body's "message" or "error" field, when present.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	e := &APIError{StatusCode: status, Body: body}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	return e
}

// ServerMessage returns the backend's own message for err, if it sent one.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

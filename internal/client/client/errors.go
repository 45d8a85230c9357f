package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired is returned when the refresh token was rejected. It
	// matches ErrUnauthorized as well.
	ErrSessionExpired = fmt.Errorf("session expired: %w", ErrUnauthorized)

	// a 401 with nothing to refresh; Do reports the response itself
	errNoRefreshToken = errors.New("no refresh token")
)

// APIError is a non-2xx response that is not an availability failure. A 401
// or 403 APIError matches ErrUnauthorized.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// Message extracts a human readable message from err, preferring what the
// backend said. It falls back to fallback for errors without one.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// mapStatus turns a non-2xx response into an error.
func mapStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg := parseMessage(body); msg != "" {
			return &APIError{StatusCode: status, Message: msg}
		}
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	msg := parseMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// parseMessage reads {"message": ...} where message is a string or a list of
// strings. Anything else yields "".
func parseMessage(body []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(envelope.Message, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

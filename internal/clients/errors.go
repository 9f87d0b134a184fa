package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the auth service rejects a login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionExpired is returned when an authenticated call comes back 401.
	// The stored token has already been cleared by the time callers see it.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrAccountExists is returned when a signup hits an already registered email.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrNotAuthenticated is returned when an authenticated call is attempted
	// with no stored token.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrMalformedResponse is returned when the service answered successfully
	// but the payload is missing a field the client requires.
	ErrMalformedResponse = errors.New("unexpected response from the sentiment service")

	ErrNotCSV       = errors.New("only CSV files can be uploaded")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// APIError is a received-but-unsuccessful HTTP response. Message carries the
// server-supplied text when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// TransportError means the request never reached the server.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach the sentiment service: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// errorMessage extracts a human-readable message from an error body. Bodies
// may be JSON {"message": ...} or plain text.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return fallback
}

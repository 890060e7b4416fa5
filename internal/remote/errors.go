package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for the remote package. Callers branch on these with
// errors.Is; the wrapped message carries the server's detail when available.
var (
	// ErrNotAuthenticated means no token is present; the request was
	// never sent.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthorized means the server rejected the token (HTTP 401).
	// The caller must re-authenticate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the token is valid but not entitled (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is HTTP 404 on book or page lookups.
	ErrNotFound = errors.New("not found")

	// ErrNotReady is HTTP 400 on status-gated endpoints: the book's
	// processing has not completed.
	ErrNotReady = errors.New("book is not ready yet")

	// ErrMalformedResponse means the server returned 2xx but the body
	// did not match the endpoint's response schema.
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestError is any other non-success response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

// AuthenticationError is a rejected login attempt.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

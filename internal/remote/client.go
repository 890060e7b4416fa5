// Package remote is a typed client for the book-processing API.
//
// Every endpoint maps to one method returning a typed result or a typed
// error (see errors.go). The client attaches the session's bearer header,
// validates 2xx bodies against per-endpoint response schemas, and never
// retries internally.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/EgeUnlu35/aithor/internal/session"
)

// DefaultTimeout bounds each request when the config does not set one.
const DefaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL is the API root including the version prefix,
	// e.g. "https://host/api/v1".
	BaseURL string

	// Session supplies the bearer credential for authenticated calls.
	Session *session.Session

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// OnUnauthorized is invoked whenever the server returns 401 on an
	// authenticated call, so the re-authentication rule is applied in
	// one place instead of per caller. May be nil.
	OnUnauthorized func()

	// Logger for request-level debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is an HTTP client for the book-processing API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized func()
	logger         *slog.Logger
}

// New creates a new API client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		session:        cfg.Session,
		onUnauthorized: cfg.OnUnauthorized,
		logger:         logger,
	}
}

// get performs an authenticated GET and decodes the validated response.
// codeErrs maps endpoint-specific status codes to sentinel errors; 401 is
// handled centrally for every authenticated call.
func (c *Client) get(ctx context.Context, path string, schema *jsonschema.Schema, result any, codeErrs map[int]error) error {
	header := c.session.Header()
	if header == "" {
		return ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "method", http.MethodGet, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, schema, result, codeErrs)
}

// postJSON performs a POST with a JSON body. When authed is false the
// bearer header is omitted (login is the only unauthenticated call).
func (c *Client) postJSON(ctx context.Context, path string, body any, authed bool, schema *jsonschema.Schema, result any, codeErrs map[int]error) error {
	var header string
	if authed {
		header = c.session.Header()
		if header == "" {
			return ErrNotAuthenticated
		}
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	c.logger.Debug("api request", "method", http.MethodPost, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, schema, result, codeErrs)
}

func (c *Client) handleResponse(resp *http.Response, schema *jsonschema.Schema, result any, codeErrs map[int]error) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeValidated(body, schema, result)
	}

	detail := errorDetail(body)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
		}
		return ErrUnauthorized
	}

	if sentinel, ok := codeErrs[resp.StatusCode]; ok {
		if detail != "" {
			return fmt.Errorf("%w: %s", sentinel, detail)
		}
		return sentinel
	}

	return &RequestError{StatusCode: resp.StatusCode, Message: detail}
}

// decodeValidated checks body against schema before unmarshaling into
// result. Schema violations surface as ErrMalformedResponse so malformed
// server data never propagates into typed values.
func decodeValidated(body []byte, schema *jsonschema.Schema, result any) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return nil
}

// errorDetail extracts a human-readable message from an error body.
// The server uses FastAPI-style {"detail": ...} where detail is either a
// string or a list of validation errors; {"error": ...} is also accepted.
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	if len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

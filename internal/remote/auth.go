package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token. It is the only
// unauthenticated call; a rejected login returns *AuthenticationError with
// the server's detail message when one is present.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	bodyBytes, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "method", http.MethodPost, "path", "/auth/login")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthenticationError{Message: errorDetail(body)}
	}

	var result LoginResponse
	if err := decodeValidated(body, loginSchema, &result); err != nil {
		return nil, err
	}
	if result.TokenType == "" {
		result.TokenType = "bearer"
	}
	return &result, nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", userSchema, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

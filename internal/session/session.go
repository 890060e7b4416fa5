// Package session holds the bearer credential for the remote API.
//
// The session is an explicit object handed to the API client rather than
// ambient process state: commands construct one from the home directory,
// and the client reads the auth header through it on every request.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// DefaultTokenType is used when the server does not specify one.
const DefaultTokenType = "bearer"

// Session manages the persisted auth token for one client installation.
type Session struct {
	mu        sync.RWMutex
	path      string
	token     string
	tokenType string
}

// tokenFile is the on-disk representation of the credential.
type tokenFile struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Load opens the session backed by the token file at path.
// A missing file is a valid, unauthenticated session.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	s.token = tf.AccessToken
	s.tokenType = tf.TokenType
	return s, nil
}

// IsAuthenticated reports whether a token is present.
// Token presence is the sole authentication gate.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Header returns the Authorization header value, or "" when unauthenticated.
// The token type is capitalized ("bearer" -> "Bearer"), matching what the
// server expects.
func (s *Session) Header() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return ""
	}

	tokenType := s.tokenType
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	tokenType = strings.ToUpper(tokenType[:1]) + tokenType[1:]

	return tokenType + " " + s.token
}

// Set stores the credential and writes it through to disk.
func (s *Session) Set(token, tokenType string) error {
	if tokenType == "" {
		tokenType = DefaultTokenType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(tokenFile{AccessToken: token, TokenType: tokenType})
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	s.token = token
	s.tokenType = tokenType
	return nil
}

// Clear removes the credential from memory and disk (logout).
// Clearing an unauthenticated session is not an error.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.tokenType = ""

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

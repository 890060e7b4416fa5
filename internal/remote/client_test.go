package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/EgeUnlu35/aithor/internal/session"
)

// newTestSession returns a session with a stored token.
func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.Load(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("test-token", "bearer"); err != nil {
		t.Fatal(err)
	}
	return s
}

// newTestClient wires a client against an httptest server.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		BaseURL: server.URL,
		Session: newTestSession(t),
	})
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func TestClient_NotAuthenticated(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	emptySession, err := session.Load(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatal(err)
	}
	client := New(Config{BaseURL: server.URL, Session: emptySession})

	if _, err := client.ListBooks(context.Background(), 1, 20); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("ListBooks() error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := client.CurrentUser(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CurrentUser() error = %v, want ErrNotAuthenticated", err)
	}
	if called {
		t.Error("no network call should be attempted without a token")
	}
}

func TestClient_AuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, BooksList{Books: []Book{}, Total: 0})
	})

	if _, err := client.ListBooks(context.Background(), 1, 20); err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestClient_Unauthorized(t *testing.T) {
	var unauthorizedFired bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	}))
	defer server.Close()

	client := New(Config{
		BaseURL:        server.URL,
		Session:        newTestSession(t),
		OnUnauthorized: func() { unauthorizedFired = true },
	})

	_, err := client.ListBooks(context.Background(), 1, 20)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ListBooks() error = %v, want ErrUnauthorized", err)
	}
	if !unauthorizedFired {
		t.Error("OnUnauthorized callback was not invoked on 401")
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" {
				t.Errorf("path = %s, want /auth/login", r.URL.Path)
			}
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Fatalf("failed to decode credentials: %v", err)
			}
			if creds.Email != "reader@example.com" {
				t.Errorf("email = %q", creds.Email)
			}
			writeJSON(t, w, http.StatusOK, LoginResponse{AccessToken: "tok", TokenType: "bearer"})
		})

		resp, err := client.Login(context.Background(), "reader@example.com", "secret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.AccessToken != "tok" {
			t.Errorf("AccessToken = %q, want %q", resp.AccessToken, "tok")
		}
	})

	t.Run("rejected with string detail", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		})

		_, err := client.Login(context.Background(), "reader@example.com", "wrong")
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("Login() error = %T, want *AuthenticationError", err)
		}
		if authErr.Message != "Invalid credentials" {
			t.Errorf("Message = %q, want server detail", authErr.Message)
		}
	})

	t.Run("rejected with validation detail list", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]any{
					{"loc": []string{"body", "email"}, "msg": "value is not a valid email address", "type": "value_error"},
				},
			})
		})

		_, err := client.Login(context.Background(), "not-an-email", "x")
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("Login() error = %T, want *AuthenticationError", err)
		}
		if authErr.Message != "value is not a valid email address" {
			t.Errorf("Message = %q", authErr.Message)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("path = %s, want /auth/me", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, User{ID: 7, Email: "reader@example.com", Username: "reader", IsActive: true})
	})

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.ID != 7 || user.Username != "reader" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	t.Run("non-json body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html>gateway error</html>"))
		})

		if _, err := client.ListBooks(context.Background(), 1, 20); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ListBooks() error = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			// total is a string, books missing
			writeJSON(t, w, http.StatusOK, map[string]any{"total": "twelve"})
		})

		if _, err := client.ListBooks(context.Background(), 1, 20); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ListBooks() error = %v, want ErrMalformedResponse", err)
		}
	})
}

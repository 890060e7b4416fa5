package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/EgeUnlu35/aithor/internal/remote"
	"github.com/EgeUnlu35/aithor/internal/session"
)

// fakeBook serves one book's endpoints and counts requests per path kind.
type fakeBook struct {
	t          *testing.T
	bookID     int
	status     string
	totalPages int

	mu     sync.Mutex
	counts map[string]int

	// pageHook, when set, runs at the start of every page request.
	pageHook func(n int)
}

func (f *fakeBook) bump(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[kind]++
}

func (f *fakeBook) count(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[kind]
}

func (f *fakeBook) handler() http.Handler {
	mux := http.NewServeMux()
	prefix := fmt.Sprintf("/books/%d", f.bookID)

	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		f.bump("details")
		writeJSON(f.t, w, map[string]any{"id": f.bookID, "title": "Fake Book", "author": "Nobody"})
	})
	mux.HandleFunc(prefix+"/status", func(w http.ResponseWriter, r *http.Request) {
		f.bump("status")
		writeJSON(f.t, w, map[string]any{
			"book_id":          f.bookID,
			"status":           f.status,
			"total_pages":      f.totalPages,
			"error_message":    "ocr crashed",
			"progress_message": "converting page 3 of 12",
		})
	})
	mux.HandleFunc(prefix+"/stats", func(w http.ResponseWriter, r *http.Request) {
		f.bump("stats")
		if f.status != "completed" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(f.t, w, map[string]any{
			"book_id": f.bookID, "total_pages": f.totalPages,
			"total_words": 1200, "total_chars": 6400,
			"estimated_reading_time": "6 minutes",
		})
	})
	mux.HandleFunc(prefix+"/pages/", func(w http.ResponseWriter, r *http.Request) {
		f.bump("pages")
		var n int
		if _, err := fmt.Sscanf(r.URL.Path, prefix+"/pages/%d", &n); err != nil {
			f.t.Errorf("bad page path %q: %v", r.URL.Path, err)
		}
		if f.pageHook != nil {
			f.pageHook(n)
		}
		if n < 1 || n > f.totalPages {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "page out of range"})
			return
		}
		resp := map[string]any{
			"page": map[string]any{
				"page_number": n,
				"content":     fmt.Sprintf("content of page %d", n),
				"word_count":  100, "char_count": 550, "book_id": f.bookID,
			},
			"has_previous": n > 1,
			"has_next":     n < f.totalPages,
			"total_pages":  f.totalPages,
		}
		if n > 1 {
			resp["previous_page"] = n - 1
		}
		if n < f.totalPages {
			resp["next_page"] = n + 1
		}
		writeJSON(f.t, w, resp)
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func newSession(t *testing.T, f *fakeBook) *Session {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatalf("session.Load: %v", err)
	}
	if err := sess.Set("test-token", "bearer"); err != nil {
		t.Fatalf("session.Set: %v", err)
	}

	client := remote.New(remote.Config{BaseURL: srv.URL, Session: sess})
	return New(client, f.bookID)
}

func TestLoadGatesOnProcessingStatus(t *testing.T) {
	for _, status := range []string{"pending", "processing"} {
		t.Run(status, func(t *testing.T) {
			f := &fakeBook{t: t, bookID: 7, status: status, totalPages: 12}
			s := newSession(t, f)

			if err := s.Load(context.Background()); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := s.State(); got != StateNotReady {
				t.Fatalf("state: got %v, want %v", got, StateNotReady)
			}
			if got := s.Message(); got != "converting page 3 of 12" {
				t.Errorf("message: got %q", got)
			}
			// a not-ready book must not trigger stats or page fetches
			if n := f.count("stats"); n != 0 {
				t.Errorf("stats fetched %d times for %s book", n, status)
			}
			if n := f.count("pages"); n != 0 {
				t.Errorf("pages fetched %d times for %s book", n, status)
			}
		})
	}
}

func TestLoadFailedBook(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "failed"}
	s := newSession(t, f)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.State(); got != StateFailed {
		t.Fatalf("state: got %v, want %v", got, StateFailed)
	}
	if got := s.Message(); got != "ocr crashed" {
		t.Errorf("message: got %q", got)
	}
}

func TestLoadCompletedBook(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "completed", totalPages: 5}
	s := newSession(t, f)
	ctx := context.Background()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state: got %v, want %v", got, StateReady)
	}
	if s.Stats() == nil || s.Stats().TotalWords != 1200 {
		t.Errorf("stats: %+v", s.Stats())
	}
	if got := s.Page().Page.PageNumber; got != 1 {
		t.Errorf("initial page: got %d, want 1", got)
	}
	if s.Page().HasPrevious {
		t.Error("page 1 reports a previous page")
	}
}

func TestNavigation(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "completed", totalPages: 5}
	s := newSession(t, f)
	ctx := context.Background()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Prev at page 1 is a no-op, no request issued
	before := f.count("pages")
	if err := s.Prev(ctx); err != nil {
		t.Fatalf("Prev at first page: %v", err)
	}
	if got := s.Page().Page.PageNumber; got != 1 {
		t.Errorf("Prev moved to page %d", got)
	}
	if f.count("pages") != before {
		t.Error("blocked Prev issued a request")
	}

	// walk forward to the last page
	for want := 2; want <= 5; want++ {
		if err := s.Next(ctx); err != nil {
			t.Fatalf("Next to %d: %v", want, err)
		}
		if got := s.Page().Page.PageNumber; got != want {
			t.Fatalf("after Next: got page %d, want %d", got, want)
		}
	}
	if s.Page().HasNext {
		t.Error("last page reports a next page")
	}

	// Next at the last page is a no-op
	before = f.count("pages")
	if err := s.Next(ctx); err != nil {
		t.Fatalf("Next at last page: %v", err)
	}
	if got := s.Page().Page.PageNumber; got != 5 {
		t.Errorf("blocked Next moved to page %d", got)
	}
	if f.count("pages") != before {
		t.Error("blocked Next issued a request")
	}

	if err := s.Prev(ctx); err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if got := s.Page().Page.PageNumber; got != 4 {
		t.Errorf("after Prev: got page %d, want 4", got)
	}

	if err := s.Goto(ctx, 2); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if got := s.Page().Page.PageNumber; got != 2 {
		t.Errorf("after Goto: got page %d, want 2", got)
	}
}

func TestNavigateBeforeLoad(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "completed", totalPages: 5}
	s := newSession(t, f)

	if err := s.Goto(context.Background(), 2); err == nil {
		t.Error("Goto before Load succeeded")
	}
	if err := s.Next(context.Background()); err != nil {
		t.Errorf("Next before Load: %v, want no-op", err)
	}
}

func TestLoadFailureLeavesSessionRetryable(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "completed", totalPages: 5}

	var broken atomic.Bool
	broken.Store(true)
	inner := f.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if broken.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatalf("session.Load: %v", err)
	}
	if err := sess.Set("test-token", "bearer"); err != nil {
		t.Fatalf("session.Set: %v", err)
	}
	s := New(remote.New(remote.Config{BaseURL: srv.URL, Session: sess}), 7)
	ctx := context.Background()

	if err := s.Load(ctx); err == nil {
		t.Fatal("Load against a broken server succeeded")
	}
	if got := s.State(); got != StateIdle {
		t.Fatalf("state after failed Load: got %v, want %v", got, StateIdle)
	}

	// the same session recovers once the server does
	broken.Store(false)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := s.State(); got != StateReady {
		t.Errorf("state after reload: got %v, want %v", got, StateReady)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := &fakeBook{t: t, bookID: 7, status: "completed", totalPages: 5}

	slowPageEntered := make(chan struct{})
	releaseSlowPage := make(chan struct{})
	f.pageHook = func(n int) {
		if n == 2 {
			close(slowPageEntered)
			<-releaseSlowPage
		}
	}

	s := newSession(t, f)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// issue Goto(2), hold its response, then complete Goto(4) first
	done := make(chan error, 1)
	go func() { done <- s.Goto(ctx, 2) }()
	<-slowPageEntered

	if err := s.Goto(ctx, 4); err != nil {
		t.Fatalf("Goto(4): %v", err)
	}
	close(releaseSlowPage)
	if err := <-done; err != nil {
		t.Fatalf("Goto(2): %v", err)
	}

	// the older response finished last but must not win
	if got := s.Page().Page.PageNumber; got != 4 {
		t.Errorf("current page: got %d, want 4", got)
	}
}

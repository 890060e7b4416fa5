// Package reader drives a per-book reading session against the remote
// API: book metadata, processing readiness, aggregate stats, and paged
// content with envelope-gated navigation.
package reader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/EgeUnlu35/aithor/internal/remote"
)

// State is the session's lifecycle state.
type State int

const (
	// StateIdle is the state before Load is called.
	StateIdle State = iota

	// StateLoadingMetadata means a Load is in flight.
	StateLoadingMetadata

	// StateNotReady means the book exists but processing has not
	// completed. Message holds the server's progress message.
	StateNotReady

	// StateFailed means processing failed server-side. Message holds
	// the server's error message. Terminal for this session.
	StateFailed

	// StateReady means stats and a current page are available.
	StateReady
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingMetadata:
		return "loading"
	case StateNotReady:
		return "not ready"
	case StateFailed:
		return "failed"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Session is a reading session for one remote book. A Session issues no
// polls and no retries; each transition is driven by an explicit call.
//
// Fetch failures are returned to the caller, not stored as a state: a
// failed Load settles back to StateIdle and a failed Goto leaves the
// current page in place, so the session can always be retried with a
// fresh call. Only server-reported processing failure is a state
// (StateFailed, from the status endpoint).
//
// Methods are safe for concurrent use. When calls overlap, each fetch is
// stamped with a per-session sequence number at issue time and its result
// is discarded unless it is still the latest issued, so an older response
// arriving late can never overwrite a newer one.
type Session struct {
	client *remote.Client
	bookID int
	logger *slog.Logger

	mu      sync.Mutex
	seq     uint64
	state   State
	message string
	book    *remote.Book
	status  *remote.BookStatus
	stats   *remote.BookStats
	page    *remote.PageResponse
}

// New creates a session for bookID in StateIdle.
func New(client *remote.Client, bookID int, opts ...Option) *Session {
	s := &Session{
		client: client,
		bookID: bookID,
		logger: slog.Default(),
		state:  StateIdle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// begin stamps a new fetch and returns its sequence token.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit applies fn only if token is still the latest issued fetch.
// Returns false when the completion was stale and discarded.
func (s *Session) commit(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		s.logger.Debug("discarding stale reader response", "book_id", s.bookID, "token", token, "latest", s.seq)
		return false
	}
	fn()
	return true
}

// Load fetches the book's metadata and processing status and settles the
// session into NotReady, Failed, or Ready. For a completed book it also
// fetches stats and page 1. Load may be called again at any time, e.g. to
// re-check a book that was still processing.
func (s *Session) Load(ctx context.Context) error {
	token := s.begin()
	s.commit(token, func() { s.state = StateLoadingMetadata })

	book, err := s.client.BookDetails(ctx, s.bookID)
	if err != nil {
		s.commit(token, func() { s.state = StateIdle })
		return err
	}
	status, err := s.client.BookStatus(ctx, s.bookID)
	if err != nil {
		s.commit(token, func() { s.state = StateIdle })
		return err
	}

	switch status.Status {
	case remote.StatusFailed:
		s.commit(token, func() {
			s.book, s.status = book, status
			s.state = StateFailed
			s.message = status.ErrorMessage
		})
		return nil
	case remote.StatusPending, remote.StatusProcessing:
		s.commit(token, func() {
			s.book, s.status = book, status
			s.state = StateNotReady
			s.message = status.ProgressMessage
		})
		return nil
	}

	stats, err := s.client.BookStats(ctx, s.bookID)
	if err != nil {
		s.commit(token, func() { s.state = StateIdle })
		return err
	}
	page, err := s.client.PageContent(ctx, s.bookID, 1)
	if err != nil {
		s.commit(token, func() { s.state = StateIdle })
		return err
	}

	s.commit(token, func() {
		s.book, s.status, s.stats, s.page = book, status, stats, page
		s.state = StateReady
		s.message = ""
	})
	return nil
}

// Goto fetches page n and makes it current. The session must be Ready.
func (s *Session) Goto(ctx context.Context, n int) error {
	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot navigate while %s", state)
	}
	s.mu.Unlock()

	token := s.begin()
	page, err := s.client.PageContent(ctx, s.bookID, n)
	if err != nil {
		return err
	}
	s.commit(token, func() { s.page = page })
	return nil
}

// Next advances to the next page. A blocked navigation (no next page per
// the envelope) is a no-op, not an error.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady || !s.page.HasNext || s.page.NextPage == nil {
		s.mu.Unlock()
		return nil
	}
	n := *s.page.NextPage
	s.mu.Unlock()
	return s.Goto(ctx, n)
}

// Prev moves to the previous page. A blocked navigation is a no-op.
func (s *Session) Prev(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady || !s.page.HasPrevious || s.page.PreviousPage == nil {
		s.mu.Unlock()
		return nil
	}
	n := *s.page.PreviousPage
	s.mu.Unlock()
	return s.Goto(ctx, n)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message returns the progress message (NotReady) or error message
// (Failed) from the last Load.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Book returns the book metadata, or nil before a successful Load.
func (s *Session) Book() *remote.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book
}

// Status returns the last fetched processing status, or nil.
func (s *Session) Status() *remote.BookStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Stats returns the book's stats, or nil unless Ready.
func (s *Session) Stats() *remote.BookStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Page returns the current page with its navigation envelope, or nil
// unless Ready.
func (s *Session) Page() *remote.PageResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

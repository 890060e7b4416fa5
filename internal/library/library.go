// Package library holds the offline-library workflows layered on the
// local store: demo seeding, resume-last-read, note creation, simulated
// translation, and reading-time estimates.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EgeUnlu35/aithor/internal/store"
)

// Library wraps a store with the workflows the CLI exposes.
type Library struct {
	store  *store.Store
	logger *slog.Logger

	// wordsPerMinute drives reading-time estimates.
	wordsPerMinute int
}

// Option customises a Library.
type Option func(*Library)

// WithLogger sets the library's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithReadingSpeed sets the words-per-minute rate used by ReadingTime.
func WithReadingSpeed(wpm int) Option {
	return func(l *Library) {
		if wpm > 0 {
			l.wordsPerMinute = wpm
		}
	}
}

// DefaultWordsPerMinute is the reading speed assumed when none is
// configured.
const DefaultWordsPerMinute = 200

// New creates a Library over an opened store.
func New(s *store.Store, opts ...Option) *Library {
	l := &Library{
		store:          s,
		logger:         slog.Default(),
		wordsPerMinute: DefaultWordsPerMinute,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Store exposes the underlying store for direct record access.
func (l *Library) Store() *store.Store {
	return l.store
}

// NewNote mints a note for a book with a fresh id and the current time.
// The note is persisted before being returned.
func (l *Library) NewNote(ctx context.Context, bookID, text, selectedText string, chapter int) (*store.Note, error) {
	if _, err := l.store.Book(ctx, bookID); err != nil {
		return nil, err
	}
	note := &store.Note{
		ID:           uuid.NewString(),
		BookID:       bookID,
		Text:         text,
		SelectedText: selectedText,
		Chapter:      chapter,
		Timestamp:    time.Now().UnixMilli(),
	}
	if err := l.store.AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Resume returns the book to reopen: the one with the most recent
// reading progress, or failing that the first book in the library.
// Progress is nil when the chosen book has never been read.
func (l *Library) Resume(ctx context.Context) (*store.Book, *store.ReadingProgress, error) {
	book, progress, err := l.store.LastRead(ctx)
	if err == nil {
		return book, progress, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}

	books, err := l.store.Books(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(books) == 0 {
		return nil, nil, fmt.Errorf("%w: library is empty", store.ErrNotFound)
	}
	return &books[0], nil, nil
}

// ReadingTime estimates how long a book takes to read at the configured
// words-per-minute rate. Always at least one minute for non-empty books.
func (l *Library) ReadingTime(book *store.Book) string {
	words := 0
	for _, ch := range book.Chapters {
		words += len(strings.Fields(stripMarkup(ch.Content)))
	}
	if words == 0 {
		return "0 minutes"
	}
	minutes := (words + l.wordsPerMinute - 1) / l.wordsPerMinute
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// stripMarkup drops HTML tags so counts reflect readable words only.
func stripMarkup(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

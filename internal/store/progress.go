package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveProgress upserts the single progress record for progress.BookID.
// Last write wins; position fields are never merged.
func (s *Store) SaveProgress(ctx context.Context, progress *ReadingProgress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (book_id, chapter_id, position, timestamp, last_read_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(book_id) DO UPDATE SET
			chapter_id = excluded.chapter_id,
			position = excluded.position,
			timestamp = excluded.timestamp,
			last_read_at = excluded.last_read_at`,
		progress.BookID, progress.ChapterID, progress.Position, progress.Timestamp, progress.LastReadAt)
	if err != nil {
		return fmt.Errorf("%w: save progress: %v", ErrUnavailable, err)
	}
	return nil
}

// Progress returns the progress record for a book, or ErrNotFound.
func (s *Store) Progress(ctx context.Context, bookID string) (*ReadingProgress, error) {
	var p ReadingProgress
	err := s.db.QueryRowContext(ctx,
		"SELECT book_id, chapter_id, position, timestamp, last_read_at FROM progress WHERE book_id = ?",
		bookID).Scan(&p.BookID, &p.ChapterID, &p.Position, &p.Timestamp, &p.LastReadAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: progress for book %q", ErrNotFound, bookID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get progress: %v", ErrUnavailable, err)
	}
	return &p, nil
}

// LastRead returns the book with the most recent last_read_at progress
// record, or ErrNotFound when no book has been read.
func (s *Store) LastRead(ctx context.Context) (*Book, *ReadingProgress, error) {
	var p ReadingProgress
	err := s.db.QueryRowContext(ctx,
		`SELECT p.book_id, p.chapter_id, p.position, p.timestamp, p.last_read_at
		 FROM progress p
		 JOIN books b ON b.id = p.book_id
		 WHERE p.last_read_at > 0
		 ORDER BY p.last_read_at DESC
		 LIMIT 1`).Scan(&p.BookID, &p.ChapterID, &p.Position, &p.Timestamp, &p.LastReadAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: no book has been read", ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: find last read: %v", ErrUnavailable, err)
	}

	book, err := s.Book(ctx, p.BookID)
	if err != nil {
		return nil, nil, err
	}
	return book, &p, nil
}

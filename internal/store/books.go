package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// AddBook inserts a new book. Insert-only: an existing id fails with
// ErrDuplicate (use UpdateBook to overwrite).
func (s *Store) AddBook(ctx context.Context, book *Book) error {
	chapters, metadata, err := marshalBookColumns(book)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, cover, progress, chapters, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.Cover, book.Progress, chapters, metadata)
	if isDuplicate(err) {
		return fmt.Errorf("%w: book %q", ErrDuplicate, book.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: add book: %v", ErrUnavailable, err)
	}
	return nil
}

// Books returns all books. Order is unspecified; callers must not rely on
// insertion order.
func (s *Store) Books(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, author, cover, progress, chapters, metadata FROM books")
	if err != nil {
		return nil, fmt.Errorf("%w: list books: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list books: %v", ErrUnavailable, err)
	}
	return books, nil
}

// Book returns the book with the given id, or ErrNotFound.
func (s *Store) Book(ctx context.Context, id string) (*Book, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, author, cover, progress, chapters, metadata FROM books WHERE id = ?", id)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: book %q", ErrNotFound, id)
	}
	return book, err
}

// UpdateBook upserts a book by id.
func (s *Store) UpdateBook(ctx context.Context, book *Book) error {
	chapters, metadata, err := marshalBookColumns(book)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, cover, progress, chapters, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			cover = excluded.cover,
			progress = excluded.progress,
			chapters = excluded.chapters,
			metadata = excluded.metadata`,
		book.ID, book.Title, book.Author, book.Cover, book.Progress, chapters, metadata)
	if err != nil {
		return fmt.Errorf("%w: update book: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteBook removes a book by id. Deleting a missing id is not an error.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: delete book: %v", ErrUnavailable, err)
	}
	return nil
}

func marshalBookColumns(book *Book) (chapters, metadata any, err error) {
	if book.Chapters != nil {
		data, err := json.Marshal(book.Chapters)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal chapters: %w", err)
		}
		chapters = string(data)
	}
	if book.Metadata != nil {
		data, err := json.Marshal(book.Metadata)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = string(data)
	}
	return chapters, metadata, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*Book, error) {
	var book Book
	var chapters, metadata sql.NullString

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Cover, &book.Progress, &chapters, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan book: %v", ErrUnavailable, err)
	}

	if chapters.Valid {
		if err := json.Unmarshal([]byte(chapters.String), &book.Chapters); err != nil {
			return nil, fmt.Errorf("%w: corrupt chapters for book %q: %v", ErrUnavailable, book.ID, err)
		}
	}
	if metadata.Valid {
		if err := json.Unmarshal([]byte(metadata.String), &book.Metadata); err != nil {
			return nil, fmt.Errorf("%w: corrupt metadata for book %q: %v", ErrUnavailable, book.ID, err)
		}
	}
	return &book, nil
}

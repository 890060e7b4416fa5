package store

import (
	"context"
	"fmt"
)

// AddNote inserts a new note. An existing id fails with ErrDuplicate.
func (s *Store) AddNote(ctx context.Context, note *Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, book_id, text, selected_text, chapter, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.BookID, note.Text, note.SelectedText, note.Chapter, note.Timestamp)
	if isDuplicate(err) {
		return fmt.Errorf("%w: note %q", ErrDuplicate, note.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: add note: %v", ErrUnavailable, err)
	}
	return nil
}

// Notes returns all notes for a book, unspecified order.
func (s *Store) Notes(ctx context.Context, bookID string) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, book_id, text, selected_text, chapter, timestamp FROM notes WHERE book_id = ?", bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.BookID, &note.Text, &note.SelectedText, &note.Chapter, &note.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan note: %v", ErrUnavailable, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", ErrUnavailable, err)
	}
	return notes, nil
}

// UpdateNote upserts a note by id.
func (s *Store) UpdateNote(ctx context.Context, note *Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, book_id, text, selected_text, chapter, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			book_id = excluded.book_id,
			text = excluded.text,
			selected_text = excluded.selected_text,
			chapter = excluded.chapter,
			timestamp = excluded.timestamp`,
		note.ID, note.BookID, note.Text, note.SelectedText, note.Chapter, note.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: update note: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteNote removes a note by id. Deleting a missing id is not an error.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: delete note: %v", ErrUnavailable, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func sampleBook(id string) *Book {
	return &Book{
		ID:       id,
		Title:    "The Time Machine",
		Author:   "H.G. Wells",
		Cover:    "https://example.com/cover.jpg",
		Progress: 40,
		Chapters: []Chapter{
			{ID: "ch2", Title: "Chapter 2", Content: "The second chapter.", Order: 2},
			{ID: "ch1", Title: "Chapter 1", Content: "The first chapter.", Order: 1},
		},
		Metadata: &Metadata{
			Description:   "A scientist travels to the year 802,701.",
			Publisher:     "Heinemann",
			PublishedDate: "1895",
		},
	}
}

func TestBookRoundTrip(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	want := sampleBook("book-1")
	if err := s.AddBook(ctx, want); err != nil {
		t.Fatalf("AddBook: %v", err)
	}

	got, err := s.Book(ctx, "book-1")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestBookWithoutOptionalFields(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	want := &Book{ID: "bare", Title: "Bare"}
	if err := s.AddBook(ctx, want); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	got, err := s.Book(ctx, "bare")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if got.Chapters != nil {
		t.Errorf("expected nil chapters, got %+v", got.Chapters)
	}
	if got.Metadata != nil {
		t.Errorf("expected nil metadata, got %+v", got.Metadata)
	}
}

func TestAddBookDuplicate(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	if err := s.AddBook(ctx, sampleBook("dup")); err != nil {
		t.Fatalf("first AddBook: %v", err)
	}
	err := s.AddBook(ctx, sampleBook("dup"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("second AddBook: got %v, want ErrDuplicate", err)
	}
}

func TestUpdateBookUpserts(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	// update-on-missing inserts
	book := sampleBook("up")
	if err := s.UpdateBook(ctx, book); err != nil {
		t.Fatalf("UpdateBook (insert): %v", err)
	}

	book.Progress = 75
	book.Title = "The Time Machine (revised)"
	if err := s.UpdateBook(ctx, book); err != nil {
		t.Fatalf("UpdateBook (overwrite): %v", err)
	}

	got, err := s.Book(ctx, "up")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if got.Progress != 75 || got.Title != "The Time Machine (revised)" {
		t.Errorf("overwrite not applied: %+v", got)
	}
}

func TestDeleteBook(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	if err := s.AddBook(ctx, sampleBook("gone")); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	if err := s.DeleteBook(ctx, "gone"); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if _, err := s.Book(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Book after delete: got %v, want ErrNotFound", err)
	}

	// deleting a missing book is not an error
	if err := s.DeleteBook(ctx, "never-existed"); err != nil {
		t.Errorf("DeleteBook missing: %v", err)
	}
}

func TestNotesScopedToBook(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	notes := []Note{
		{ID: "n1", BookID: "book-a", Text: "first", Timestamp: 1},
		{ID: "n2", BookID: "book-a", Text: "second", SelectedText: "a passage", Chapter: 3, Timestamp: 2},
		{ID: "n3", BookID: "book-b", Text: "other book", Timestamp: 3},
	}
	for i := range notes {
		if err := s.AddNote(ctx, &notes[i]); err != nil {
			t.Fatalf("AddNote %s: %v", notes[i].ID, err)
		}
	}

	got, err := s.Notes(ctx, "book-a")
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Notes(book-a): got %d notes, want 2", len(got))
	}
	for _, n := range got {
		if n.BookID != "book-a" {
			t.Errorf("note %s leaked from book %q", n.ID, n.BookID)
		}
	}

	if err := s.AddNote(ctx, &notes[0]); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate AddNote: got %v, want ErrDuplicate", err)
	}

	if err := s.DeleteNote(ctx, "n1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	got, err = s.Notes(ctx, "book-a")
	if err != nil {
		t.Fatalf("Notes after delete: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n2" {
		t.Errorf("Notes after delete: %+v", got)
	}
}

func TestProgressLastWriteWins(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	first := &ReadingProgress{BookID: "book-1", ChapterID: "ch1", Position: 10, Timestamp: 100, LastReadAt: 100}
	second := &ReadingProgress{BookID: "book-1", ChapterID: "ch3", Position: 55, Timestamp: 200, LastReadAt: 200}

	if err := s.SaveProgress(ctx, first); err != nil {
		t.Fatalf("SaveProgress first: %v", err)
	}
	if err := s.SaveProgress(ctx, second); err != nil {
		t.Fatalf("SaveProgress second: %v", err)
	}

	got, err := s.Progress(ctx, "book-1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("got %+v, want latest write %+v", got, second)
	}
}

func TestProgressNotFound(t *testing.T) {
	s := OpenMemory(t)
	if _, err := s.Progress(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLastRead(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	if _, _, err := s.LastRead(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LastRead on empty store: got %v, want ErrNotFound", err)
	}

	for _, id := range []string{"older", "newer"} {
		b := sampleBook(id)
		b.Title = id
		if err := s.AddBook(ctx, b); err != nil {
			t.Fatalf("AddBook %s: %v", id, err)
		}
	}
	if err := s.SaveProgress(ctx, &ReadingProgress{BookID: "older", LastReadAt: 100, Timestamp: 100}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveProgress(ctx, &ReadingProgress{BookID: "newer", LastReadAt: 200, Timestamp: 200}); err != nil {
		t.Fatal(err)
	}

	book, progress, err := s.LastRead(ctx)
	if err != nil {
		t.Fatalf("LastRead: %v", err)
	}
	if book.ID != "newer" {
		t.Errorf("LastRead book: got %q, want %q", book.ID, "newer")
	}
	if progress.LastReadAt != 200 {
		t.Errorf("LastRead progress: got %d, want 200", progress.LastReadAt)
	}
}

func TestConcurrentOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	ctx := context.Background()

	const openers = 8
	var wg sync.WaitGroup
	stores := make([]*Store, openers)
	errs := make([]error, openers)
	for i := 0; i < openers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i], errs[i] = Open(path)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("opener %d: %v", i, err)
		}
	}
	for i, s := range stores {
		version, err := s.SchemaVersion(ctx)
		if err != nil {
			t.Fatalf("opener %d SchemaVersion: %v", i, err)
		}
		if version != len(migrations) {
			t.Errorf("opener %d sees schema version %d, want %d", i, version, len(migrations))
		}
		s.Close()
	}
}

func TestMigrationsPreserveRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version: got %d, want %d", version, len(migrations))
	}

	want := sampleBook("persisted")
	if err := s.AddBook(ctx, want); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reopening runs migrate again; existing records survive
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Book(ctx, "persisted")
	if err != nil {
		t.Fatalf("Book after reopen: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("record changed across reopen:\n got %+v\nwant %+v", got, want)
	}
}

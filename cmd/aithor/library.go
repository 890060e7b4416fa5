package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/api"
	"github.com/EgeUnlu35/aithor/internal/library"
	"github.com/EgeUnlu35/aithor/internal/store"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Local offline library commands",
	Long: `Library commands manage the on-disk book collection. The local
library is independent of the server: its books live entirely in
~/.aithor and are available offline.

Examples:
  aithor library seed        # Install the built-in demo books
  aithor library list        # List local books
  aithor library show 1      # Book details, notes, reading time`,
}

var librarySeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the built-in demo books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		inserted, err := lib.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d new books\n", inserted)
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		books, err := lib.Store().Books(cmd.Context())
		if err != nil {
			return err
		}

		type row struct {
			ID          string `json:"id" yaml:"id"`
			Title       string `json:"title" yaml:"title"`
			Author      string `json:"author" yaml:"author"`
			Progress    int    `json:"progress" yaml:"progress"`
			ReadingTime string `json:"readingTime" yaml:"reading_time"`
		}
		rows := make([]row, 0, len(books))
		for i := range books {
			rows = append(rows, row{
				ID:          books[i].ID,
				Title:       books[i].Title,
				Author:      books[i].Author,
				Progress:    books[i].Progress,
				ReadingTime: lib.ReadingTime(&books[i]),
			})
		}
		return api.Output(rows)
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show BOOK_ID",
	Short: "Show a local book with its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		book, err := lib.Store().Book(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		notes, err := lib.Store().Notes(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return api.Output(map[string]any{
			"book":         book,
			"notes":        notes,
			"reading_time": lib.ReadingTime(book),
		})
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete BOOK_ID",
	Short: "Remove a book from the local library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := lib.Store().DeleteBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Notes on local books",
}

var (
	noteSelectedText string
	noteChapter      int
)

var notesAddCmd = &cobra.Command{
	Use:   "add BOOK_ID TEXT",
	Short: "Add a note to a local book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		note, err := lib.NewNote(cmd.Context(), args[0], args[1], noteSelectedText, noteChapter)
		if err != nil {
			return err
		}
		return api.Output(note)
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list BOOK_ID",
	Short: "List a local book's notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		notes, err := lib.Store().Notes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return api.Output(notes)
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete NOTE_ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := lib.Store().DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted note %s\n", args[0])
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Reading progress for local books",
}

var (
	progressChapter  string
	progressPosition int
)

var progressSetCmd = &cobra.Command{
	Use:   "set BOOK_ID",
	Short: "Record where you stopped reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := lib.Store().Book(cmd.Context(), args[0]); err != nil {
			return err
		}

		now := time.Now().UnixMilli()
		p := &store.ReadingProgress{
			BookID:     args[0],
			ChapterID:  progressChapter,
			Position:   progressPosition,
			Timestamp:  now,
			LastReadAt: now,
		}
		if err := lib.Store().SaveProgress(cmd.Context(), p); err != nil {
			return err
		}
		return api.Output(p)
	},
}

var progressGetCmd = &cobra.Command{
	Use:   "get BOOK_ID",
	Short: "Show where you stopped reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := lib.Store().Progress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return api.Output(p)
	},
}

func mustLibrary() (*library.Library, *store.Store, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	return a.openLibrary()
}

func init() {
	notesAddCmd.Flags().StringVar(&noteSelectedText, "selected", "", "quoted passage the note refers to")
	notesAddCmd.Flags().IntVar(&noteChapter, "chapter", 0, "chapter number the note belongs to")

	progressSetCmd.Flags().StringVar(&progressChapter, "chapter", "", "chapter id")
	progressSetCmd.Flags().IntVar(&progressPosition, "position", 0, "position within the chapter")

	libraryCmd.AddCommand(librarySeedCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)

	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesDeleteCmd)

	progressCmd.AddCommand(progressSetCmd)
	progressCmd.AddCommand(progressGetCmd)

	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(progressCmd)
}

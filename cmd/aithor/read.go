package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/reader"
	"github.com/EgeUnlu35/aithor/internal/remote"
	"github.com/EgeUnlu35/aithor/internal/store"
)

var readPageFlag int

var readCmd = &cobra.Command{
	Use:   "read BOOK_ID",
	Short: "Read a processed book page by page",
	Long: `Read opens an interactive paging session over a processed book.

Commands at the prompt:
  n, <enter>   next page
  p            previous page
  <number>     jump to that page
  q            quit

A book that is still processing cannot be opened; read reports its
progress message instead. Use 'aithor read resume' to reopen the most
recently read book from the local library.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}

		// long-lived interactive command; pick up config edits live
		a.manager.WatchConfig()

		s := reader.New(a.client(), id)
		if err := s.Load(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch s.State() {
		case reader.StateNotReady:
			fmt.Fprintf(out, "%q is still processing: %s\n", s.Book().Title, s.Message())
			return nil
		case reader.StateFailed:
			return fmt.Errorf("processing of %q failed: %s", s.Book().Title, s.Message())
		}

		if readPageFlag > 0 {
			if err := s.Goto(cmd.Context(), readPageFlag); err != nil {
				return err
			}
		}

		stats := s.Stats()
		fmt.Fprintf(out, "%s — %d pages, %d words, about %s\n\n",
			s.Book().Title, stats.TotalPages, stats.TotalWords, stats.EstimatedReadingTime)

		return remoteReaderLoop(cmd, s)
	},
}

func remoteReaderLoop(cmd *cobra.Command, s *reader.Session) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	renderPage(out, s.Page())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		var err error
		switch input := strings.TrimSpace(scanner.Text()); input {
		case "q", "quit":
			return nil
		case "n", "next", "":
			err = s.Next(ctx)
		case "p", "prev":
			err = s.Prev(ctx)
		default:
			n, convErr := strconv.Atoi(input)
			if convErr != nil {
				fmt.Fprintf(out, "unknown command %q (n, p, <number>, q)\n> ", input)
				continue
			}
			err = s.Goto(ctx, n)
		}

		switch {
		case errors.Is(err, remote.ErrNotFound):
			fmt.Fprintf(out, "no such page (1-%d)\n", s.Page().TotalPages)
		case err != nil:
			return err
		default:
			renderPage(out, s.Page())
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func renderPage(w io.Writer, page *remote.PageResponse) {
	fmt.Fprintf(w, "--- page %d of %d ---\n", page.Page.PageNumber, page.TotalPages)
	fmt.Fprintln(w, strings.TrimSpace(page.Page.Content))
}

var readResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Reopen the most recently read local book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		lib, s, err := a.openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		book, progress, err := lib.Resume(cmd.Context())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errors.New("library is empty; run 'aithor library seed' or upload a book")
			}
			return err
		}

		chapters := book.SortedChapters()
		if len(chapters) == 0 {
			return fmt.Errorf("%q has no readable chapters", book.Title)
		}

		current := 0
		if progress != nil {
			for i, ch := range chapters {
				if ch.ID == progress.ChapterID {
					current = i
					break
				}
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s by %s — about %s\n\n", book.Title, book.Author, lib.ReadingTime(book))
		return localReaderLoop(cmd, s, book, chapters, current)
	},
}

// localReaderLoop pages through a local book's chapters, saving reading
// progress on every move so resume lands where the reader left off.
func localReaderLoop(cmd *cobra.Command, s *store.Store, book *store.Book, chapters []store.Chapter, current int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	save := func() error {
		now := time.Now().UnixMilli()
		return s.SaveProgress(ctx, &store.ReadingProgress{
			BookID:     book.ID,
			ChapterID:  chapters[current].ID,
			Position:   current,
			Timestamp:  now,
			LastReadAt: now,
		})
	}

	renderChapter(out, chapters, current)
	if err := save(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		switch input := strings.TrimSpace(scanner.Text()); input {
		case "q", "quit":
			return nil
		case "n", "next", "":
			if current < len(chapters)-1 {
				current++
			}
		case "p", "prev":
			if current > 0 {
				current--
			}
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(chapters) {
				fmt.Fprintf(out, "unknown command %q (n, p, 1-%d, q)\n> ", input, len(chapters))
				continue
			}
			current = n - 1
		}

		renderChapter(out, chapters, current)
		if err := save(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func renderChapter(w io.Writer, chapters []store.Chapter, i int) {
	ch := chapters[i]
	fmt.Fprintf(w, "--- %s (chapter %d of %d) ---\n", ch.Title, i+1, len(chapters))
	fmt.Fprintln(w, strings.TrimSpace(ch.Content))
}

func init() {
	readCmd.Flags().IntVar(&readPageFlag, "page", 0, "open at this page instead of page 1")
	readCmd.AddCommand(readResumeCmd)
	rootCmd.AddCommand(readCmd)
}

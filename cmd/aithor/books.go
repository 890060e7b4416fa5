package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/api"
	"github.com/EgeUnlu35/aithor/internal/remote"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Remote book management commands",
	Long: `Books commands operate on the server-side library: uploaded files,
their processing status, and their paged content.

Examples:
  aithor books list                    # List your books
  aithor books upload scan.pdf         # Upload a book for processing
  aithor books wait 42                 # Block until processing finishes
  aithor books page 42 7               # Print page 7 of book 42`,
}

var (
	booksPage     int
	booksPageSize int
)

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your uploaded books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		pageSize := booksPageSize
		if pageSize == 0 {
			pageSize = a.config().Defaults.PageSize
		}
		list, err := a.client().ListBooks(cmd.Context(), booksPage, pageSize)
		if err != nil {
			return err
		}
		return api.Output(list)
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get BOOK_ID",
	Short: "Show a book's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		book, err := a.client().BookDetails(cmd.Context(), id)
		if err != nil {
			return err
		}
		return api.Output(book)
	},
}

var booksStatusCmd = &cobra.Command{
	Use:   "status BOOK_ID",
	Short: "Show a book's processing status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		status, err := a.client().BookStatus(cmd.Context(), id)
		if err != nil {
			return err
		}
		return api.Output(status)
	},
}

var booksStatsCmd = &cobra.Command{
	Use:   "stats BOOK_ID",
	Short: "Show word and page counts for a processed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		stats, err := a.client().BookStats(cmd.Context(), id)
		if err != nil {
			return err
		}
		return api.Output(stats)
	},
}

var booksPagesCmd = &cobra.Command{
	Use:   "pages BOOK_ID",
	Short: "List page metadata for a processed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		pageSize := booksPageSize
		if pageSize == 0 {
			pageSize = a.config().Defaults.PageSize
		}
		list, err := a.client().BookPages(cmd.Context(), id, booksPage, pageSize)
		if err != nil {
			return err
		}
		return api.Output(list)
	},
}

var booksPageCmd = &cobra.Command{
	Use:   "page BOOK_ID PAGE_NUMBER",
	Short: "Print a single page's content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page number %q", args[1])
		}
		page, err := a.client().PageContent(cmd.Context(), id, n)
		if err != nil {
			return err
		}
		return api.Output(page)
	},
}

var (
	uploadTitle  string
	uploadAuthor string
)

var booksUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a PDF or ePub for processing",
	Long: `Upload validates the file locally before sending it: only .pdf and
.epub files up to 50 MB are accepted, and PDFs are probed for a readable
page count. Processing is asynchronous; use 'aithor books wait' to block
until it finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := remote.ValidateUploadFile(args[0]); err != nil {
			return err
		}
		book, err := a.client().Upload(cmd.Context(), args[0], uploadTitle, uploadAuthor)
		if err != nil {
			return err
		}
		return api.Output(book)
	},
}

var waitTimeout time.Duration

var booksWaitCmd = &cobra.Command{
	Use:   "wait BOOK_ID",
	Short: "Block until a book finishes processing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := appWithBookID(args)
		if err != nil {
			return err
		}
		status, err := waitForProcessed(cmd.Context(), a.client(), id, waitTimeout, 2*time.Second)
		if err != nil {
			return err
		}
		return api.Output(status)
	},
}

// waitForProcessed polls a book's status until it completes, its
// processing fails, or timeout elapses. The deadline bounds the whole
// wait including request latency, not just the delays between polls.
func waitForProcessed(ctx context.Context, client *remote.Client, id int, timeout, pollDelay time.Duration) (*remote.BookStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var status *remote.BookStatus
	err := retry.Do(
		func() error {
			s, err := client.BookStatus(ctx, id)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			status = s
			switch s.Status {
			case remote.StatusCompleted:
				return nil
			case remote.StatusFailed:
				return retry.Unrecoverable(fmt.Errorf("processing failed: %s", s.ErrorMessage))
			default:
				return fmt.Errorf("still %s: %s", s.Status, s.ProgressMessage)
			}
		},
		retry.Context(ctx),
		retry.UntilSucceeded(),
		retry.Delay(pollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		return nil, err
	}
	return status, nil
}

func appWithBookID(args []string) (*app, int, error) {
	a, err := newApp()
	if err != nil {
		return nil, 0, err
	}
	id, err := parseBookID(args[0])
	if err != nil {
		return nil, 0, err
	}
	return a, id, nil
}

// parseBookID parses a remote book id. Strict: "12abc" is rejected, not
// truncated to 12.
func parseBookID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid book id %q", arg)
	}
	return id, nil
}

func init() {
	booksListCmd.Flags().IntVar(&booksPage, "page", 1, "result page")
	booksListCmd.Flags().IntVar(&booksPageSize, "page-size", 0, "results per page (default from config)")
	booksPagesCmd.Flags().IntVar(&booksPage, "page", 1, "result page")
	booksPagesCmd.Flags().IntVar(&booksPageSize, "page-size", 0, "results per page (default from config)")

	booksUploadCmd.Flags().StringVar(&uploadTitle, "title", "", "book title (defaults to server-side extraction)")
	booksUploadCmd.Flags().StringVar(&uploadAuthor, "author", "", "book author")

	booksWaitCmd.Flags().DurationVar(&waitTimeout, "timeout", 10*time.Minute, "give up after this long")

	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksGetCmd)
	booksCmd.AddCommand(booksStatusCmd)
	booksCmd.AddCommand(booksStatsCmd)
	booksCmd.AddCommand(booksPagesCmd)
	booksCmd.AddCommand(booksPageCmd)
	booksCmd.AddCommand(booksUploadCmd)
	booksCmd.AddCommand(booksWaitCmd)
	rootCmd.AddCommand(booksCmd)
}

package remote

import (
	"context"
	"fmt"
	"net/http"
)

// ListBooks fetches one page of the user's books.
func (c *Client) ListBooks(ctx context.Context, page, pageSize int) (*BooksList, error) {
	path := fmt.Sprintf("/books?page=%d&page_size=%d", page, pageSize)
	var list BooksList
	if err := c.get(ctx, path, booksListSchema, &list, nil); err != nil {
		return nil, err
	}
	return &list, nil
}

// BookDetails fetches a single book's metadata.
func (c *Client) BookDetails(ctx context.Context, bookID int) (*Book, error) {
	path := fmt.Sprintf("/books/%d", bookID)
	var book Book
	err := c.get(ctx, path, bookSchema, &book, map[int]error{
		http.StatusNotFound:  ErrNotFound,
		http.StatusForbidden: ErrForbidden,
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BookStatus fetches a book's processing status. The status endpoint has
// no special-cased codes beyond the shared 401 handling.
func (c *Client) BookStatus(ctx context.Context, bookID int) (*BookStatus, error) {
	path := fmt.Sprintf("/books/%d/status", bookID)
	var status BookStatus
	if err := c.get(ctx, path, statusSchema, &status, nil); err != nil {
		return nil, err
	}
	return &status, nil
}

// BookStats fetches aggregate counters for a processed book. A 400 means
// the book's processing has not completed (ErrNotReady).
func (c *Client) BookStats(ctx context.Context, bookID int) (*BookStats, error) {
	path := fmt.Sprintf("/books/%d/stats", bookID)
	var stats BookStats
	err := c.get(ctx, path, statsSchema, &stats, map[int]error{
		http.StatusBadRequest: ErrNotReady,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// BookPages fetches one page of page metadata for a book.
func (c *Client) BookPages(ctx context.Context, bookID, page, pageSize int) (*PagesList, error) {
	path := fmt.Sprintf("/books/%d/pages?page=%d&page_size=%d", bookID, page, pageSize)
	var list PagesList
	err := c.get(ctx, path, pagesListSchema, &list, map[int]error{
		http.StatusBadRequest: ErrNotReady,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// PageContent fetches a single page with its navigation envelope.
func (c *Client) PageContent(ctx context.Context, bookID, pageNumber int) (*PageResponse, error) {
	path := fmt.Sprintf("/books/%d/pages/%d", bookID, pageNumber)
	var page PageResponse
	err := c.get(ctx, path, pageResponseSchema, &page, map[int]error{
		http.StatusNotFound:   ErrNotFound,
		http.StatusBadRequest: ErrNotReady,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

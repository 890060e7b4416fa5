package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MaxUploadSize is the server's upload cap.
const MaxUploadSize = 50 << 20 // 50 MB

// UploadCheck is the result of a pre-upload validation pass.
type UploadCheck struct {
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	FileType  string `json:"file_type"`
	PageCount int    `json:"page_count,omitempty"`
}

// ValidateUploadFile checks a file before uploading: extension allow-list
// (pdf/epub), size cap, and for PDFs a pdfcpu page count probe that also
// catches unreadable files. Returns metadata about the file on success.
func ValidateUploadFile(path string) (*UploadCheck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" && ext != ".epub" {
		return nil, fmt.Errorf("unsupported file type %q: only PDF and EPUB files can be uploaded", ext)
	}

	if info.Size() > MaxUploadSize {
		return nil, fmt.Errorf("file is %d bytes, exceeding the %d byte limit", info.Size(), int64(MaxUploadSize))
	}

	check := &UploadCheck{
		FileName: filepath.Base(path),
		FileSize: info.Size(),
		FileType: strings.TrimPrefix(ext, "."),
	}

	if ext == ".pdf" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		pageCount, err := api.PageCount(f, nil)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("not a readable PDF: %w", err)
		}
		check.PageCount = pageCount
	}

	return check, nil
}

// Upload sends a book file to the server as multipart form data.
// The author field is omitted when empty, matching the upload form.
func (c *Client) Upload(ctx context.Context, path, title, author string) (*Book, error) {
	header := c.session.Header()
	if header == "" {
		return nil, ErrNotAuthenticated
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("failed to write title field: %w", err)
	}
	if author != "" {
		if err := writer.WriteField("author", author); err != nil {
			return nil, fmt.Errorf("failed to write author field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/books/upload", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "method", http.MethodPost, "path", "/books/upload", "file", filepath.Base(path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var book Book
	if err := c.handleResponse(resp, bookSchema, &book, nil); err != nil {
		return nil, err
	}
	return &book, nil
}

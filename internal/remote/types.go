package remote

// Book is a server-side book record. Its integer id lives in a different
// identifier space than the local library's string ids; the two are never
// reconciled.
type Book struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	UserID     int    `json:"user_id"`
	UploadedAt string `json:"uploaded_at"`
}

// BooksList is one page of the user's books.
type BooksList struct {
	Books    []Book `json:"books"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// User is the authenticated user's profile.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ProcessingStatus is a book's server-side processing state.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Done reports whether processing has reached a terminal state.
func (s ProcessingStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// BookStatus is the processing status of a book. TotalPages is only
// meaningful once Status is completed.
type BookStatus struct {
	BookID          int              `json:"book_id"`
	Status          ProcessingStatus `json:"status"`
	TotalPages      int              `json:"total_pages"`
	ErrorMessage    string           `json:"error_message"`
	ProgressMessage string           `json:"progress_message"`
}

// BookStats are aggregate counters for a processed book.
type BookStats struct {
	BookID               int    `json:"book_id"`
	TotalPages           int    `json:"total_pages"`
	TotalWords           int    `json:"total_words"`
	TotalChars           int    `json:"total_chars"`
	EstimatedReadingTime string `json:"estimated_reading_time"`
}

// PageMetadata is a page's counters without its content.
type PageMetadata struct {
	PageNumber int `json:"page_number"`
	WordCount  int `json:"word_count"`
	CharCount  int `json:"char_count"`
}

// PagesList is one page of page metadata for a book.
type PagesList struct {
	Pages       []PageMetadata `json:"pages"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
	BookID      int            `json:"book_id"`
}

// PageContent is a single rendered page.
type PageContent struct {
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
	WordCount  int    `json:"word_count"`
	CharCount  int    `json:"char_count"`
	BookID     int    `json:"book_id"`
}

// PageResponse is a page plus its navigation envelope. PreviousPage and
// NextPage are nil at the boundaries.
type PageResponse struct {
	Page         PageContent `json:"page"`
	HasPrevious  bool        `json:"has_previous"`
	HasNext      bool        `json:"has_next"`
	PreviousPage *int        `json:"previous_page"`
	NextPage     *int        `json:"next_page"`
	TotalPages   int         `json:"total_pages"`
}

// LoginResponse is the credential returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

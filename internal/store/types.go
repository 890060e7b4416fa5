package store

import "sort"

// Book is a local library record. Chapters and Metadata are optional.
type Book struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Author   string    `json:"author" yaml:"author"`
	Cover    string    `json:"cover,omitempty" yaml:"cover,omitempty"`
	Progress int       `json:"progress" yaml:"progress"`
	Chapters []Chapter `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Chapter is one unit of rendered book content. Order defines the display
// sequence; it is not guaranteed unique or gap-free, so consumers sort.
type Chapter struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Order   int    `json:"order" yaml:"order"`
}

// Metadata is optional descriptive information about a book.
type Metadata struct {
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher     string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty" yaml:"published_date,omitempty"`
}

// SortedChapters returns the book's chapters in display order.
func (b *Book) SortedChapters() []Chapter {
	chapters := make([]Chapter, len(b.Chapters))
	copy(chapters, b.Chapters)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
	return chapters
}

// Note annotates a selected span of text within a book. BookID references
// a Book by convention only; the store does not enforce it.
type Note struct {
	ID           string `json:"id" yaml:"id"`
	BookID       string `json:"bookId" yaml:"book_id"`
	Text         string `json:"text" yaml:"text"`
	SelectedText string `json:"selectedText" yaml:"selected_text"`
	Chapter      int    `json:"chapter" yaml:"chapter"`
	Timestamp    int64  `json:"timestamp" yaml:"timestamp"`
}

// ReadingProgress records the reader's position in one book. At most one
// record exists per book id; saves overwrite. LastReadAt orders the
// "most recently read" selection.
type ReadingProgress struct {
	BookID     string `json:"bookId" yaml:"book_id"`
	ChapterID  string `json:"chapterId" yaml:"chapter_id"`
	Position   int    `json:"position" yaml:"position"`
	Timestamp  int64  `json:"timestamp" yaml:"timestamp"`
	LastReadAt int64  `json:"lastReadAt" yaml:"last_read_at"`
}

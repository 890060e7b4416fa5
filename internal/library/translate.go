package library

import (
	"context"
	"fmt"
	"time"

	"github.com/EgeUnlu35/aithor/internal/store"
)

// languages are the supported translation targets, code to display name.
var languages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"tr": "Turkish",
}

// LanguageName returns the display name for a language code. Unknown
// codes fall back to the raw code.
func LanguageName(code string) string {
	if name, ok := languages[code]; ok {
		return name
	}
	return code
}

// TranslateOptions configure a simulated translation.
type TranslateOptions struct {
	// Language is the target language code, e.g. "es".
	Language string

	// Tone optionally shapes the translation, e.g. "formal". Recorded
	// in the translated book's description.
	Tone string

	// TickInterval is the delay between simulated progress steps. Zero
	// means DefaultTickInterval.
	TickInterval time.Duration

	// OnProgress, when set, is called with 10, 20, ... 90 as the
	// simulation ticks and with 100 once the copy is committed.
	OnProgress func(percent int)
}

// DefaultTickInterval paces the simulated translation progress.
const DefaultTickInterval = 500 * time.Millisecond

// Translate simulates translating a local book: progress ticks to 90,
// then a translated copy is committed to the store and progress jumps to
// 100. There is no translation backend; chapter content is the original
// prefixed with a translated-content marker.
func (l *Library) Translate(ctx context.Context, bookID string, opts TranslateOptions) (*store.Book, error) {
	book, err := l.store.Book(ctx, bookID)
	if err != nil {
		return nil, err
	}

	interval := opts.TickInterval
	if interval == 0 {
		interval = DefaultTickInterval
	}
	report := opts.OnProgress
	if report == nil {
		report = func(int) {}
	}

	for percent := 10; percent <= 90; percent += 10 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
		report(percent)
	}

	name := LanguageName(opts.Language)
	translated := &store.Book{
		ID:       fmt.Sprintf("%s-%s-%d", book.ID, opts.Language, time.Now().UnixMilli()),
		Title:    fmt.Sprintf("%s (%s)", book.Title, name),
		Author:   book.Author,
		Cover:    book.Cover,
		Progress: 0,
		Metadata: translatedMetadata(book.Metadata, name, opts.Tone),
	}
	for _, ch := range book.Chapters {
		translated.Chapters = append(translated.Chapters, store.Chapter{
			ID:      ch.ID + "-translated",
			Title:   ch.Title,
			Content: fmt.Sprintf("<p>Translated content in %s...</p>%s", name, ch.Content),
			Order:   ch.Order,
		})
	}

	if err := l.store.AddBook(ctx, translated); err != nil {
		return nil, err
	}
	report(100)

	l.logger.Info("translated book committed", "source", book.ID, "translated", translated.ID, "language", opts.Language)
	return translated, nil
}

func translatedMetadata(src *store.Metadata, languageName, tone string) *store.Metadata {
	description := languageName + " translation"
	if tone != "" {
		description += " with " + tone + " tone"
	}
	meta := &store.Metadata{Description: description}
	if src != nil {
		meta.Publisher = src.Publisher
		meta.PublishedDate = src.PublishedDate
	}
	return meta
}

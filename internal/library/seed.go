package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/EgeUnlu35/aithor/internal/store"
)

// Seed inserts the built-in demo books and starter notes. Records that
// already exist are skipped, so seeding is safe to repeat. Returns the
// number of books actually inserted.
func (l *Library) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for i := range seedBooks {
		err := l.store.AddBook(ctx, &seedBooks[i])
		if errors.Is(err, store.ErrDuplicate) {
			l.logger.Debug("seed book already present", "id", seedBooks[i].ID)
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed book %q: %w", seedBooks[i].ID, err)
		}
		inserted++
	}
	for i := range seedNotes {
		err := l.store.AddNote(ctx, &seedNotes[i])
		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed note %q: %w", seedNotes[i].ID, err)
		}
	}
	return inserted, nil
}

// seedBooks is a small public-domain demo library so the reader has
// something to show before any upload completes.
var seedBooks = []store.Book{
	{
		ID:       "1",
		Title:    "1984",
		Author:   "George Orwell",
		Cover:    "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop",
		Progress: 32,
		Chapters: []store.Chapter{
			{
				ID:    "ch1",
				Title: "Part One: Chapter I",
				Content: `<h1>Part One: Chapter I</h1>
<p>It was a bright cold day in April, and the clocks were striking thirteen. Winston Smith, his chin nuzzled into his breast in an effort to escape the vile wind, slipped quickly through the glass doors of Victory Mansions, though not quickly enough to prevent a swirl of gritty dust from entering along with him.</p>
<p>The hallway smelt of boiled cabbage and old rag mats. At one end of it a coloured poster, too large for indoor display, had been tacked to the wall. It depicted simply an enormous face, more than a metre wide: the face of a man of about forty-five, with a heavy black moustache and ruggedly handsome features.</p>
<p>Winston made for the stairs. It was no use trying the lift. Even at the best of times it was seldom working, and at present the electric current was cut off during daylight hours. It was part of the economy drive in preparation for Hate Week.</p>`,
				Order: 1,
			},
			{
				ID:    "ch2",
				Title: "Part One: Chapter II",
				Content: `<h1>Part One: Chapter II</h1>
<p>As he put his hand to the door-knob Winston saw that he had left the diary open on the table. DOWN WITH BIG BROTHER was written all over it, in letters almost big enough to be legible across the room. It was an inconceivably stupid thing to have done.</p>
<p>He went to the bathroom and carefully scraped away the dirt under his fingernails. He remembered wondering vaguely whether in the abolished past it had been a normal experience to lie in a cool bath. Nowadays it was impossible.</p>
<p>The telescreen received and transmitted simultaneously. Any sound that Winston made, above the level of a very low whisper, would be picked up by it; moreover, so long as he remained within the field of vision which the metal plaque commanded, he could be seen as well as heard.</p>`,
				Order: 2,
			},
		},
		Metadata: &store.Metadata{
			Description:   "A dystopian social science fiction novel and cautionary tale about totalitarianism.",
			Publisher:     "Secker & Warburg",
			PublishedDate: "1949",
		},
	},
	{
		ID:       "2",
		Title:    "To Kill a Mockingbird",
		Author:   "Harper Lee",
		Cover:    "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop",
		Progress: 78,
		Chapters: []store.Chapter{
			{
				ID:    "ch1-mockingbird",
				Title: "Chapter 1",
				Content: `<h1>Chapter 1</h1>
<p>When he was nearly thirteen, my brother Jem got his arm badly broken at the elbow. When it healed, and Jem's fears of never being able to play football were assuaged, he was seldom self-conscious about his injury.</p>
<p>When enough years had gone by to enable us to look back on them, we sometimes discussed the events leading to his accident. I maintain that the Ewells started it all, but Jem, who was four years my senior, said it started long before that.</p>
<p>Maycomb was an old town, but it was a tired old town when I first knew it. In rainy weather the streets turned to red slop; grass grew on the sidewalks, the courthouse sagged in the square.</p>`,
				Order: 1,
			},
		},
		Metadata: &store.Metadata{
			Description:   "A novel about the serious issues of rape and racial inequality told through the eyes of a child.",
			Publisher:     "J.B. Lippincott & Co.",
			PublishedDate: "1960",
		},
	},
	{
		ID:       "3",
		Title:    "Pride and Prejudice",
		Author:   "Jane Austen",
		Cover:    "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop",
		Progress: 45,
		Chapters: []store.Chapter{
			{
				ID:    "ch1-pride",
				Title: "Chapter 1",
				Content: `<h1>Chapter 1</h1>
<p>It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.</p>
<p>However little known the feelings or views of such a man may be on his first entering a neighbourhood, this truth is so well fixed in the minds of the surrounding families, that he is considered the rightful property of some one or other of their daughters.</p>
<p>"My dear Mr. Bennet," said his lady to him one day, "have you heard that Netherfield Park is let at last?"</p>`,
				Order: 1,
			},
		},
		Metadata: &store.Metadata{
			Description:   "A romantic novel of manners that critiques the British landed gentry at the end of the 18th century.",
			Publisher:     "T. Egerton",
			PublishedDate: "1813",
		},
	},
	{
		ID:       "4",
		Title:    "The Great Gatsby",
		Author:   "F. Scott Fitzgerald",
		Cover:    "https://images.unsplash.com/photo-1497633762265-9d179a990aa6?w=400&h=600&fit=crop",
		Progress: 12,
		Chapters: []store.Chapter{
			{
				ID:    "ch1-gatsby",
				Title: "Chapter I",
				Content: `<h1>Chapter I</h1>
<p>In my younger and more vulnerable years my father gave me some advice that I've been turning over in my mind ever since.</p>
<p>"Whenever you feel like criticizing any one," he told me, "just remember that all the people in this world haven't had the advantages that you've had."</p>
<p>He didn't say any more, but we've always been unusually communicative in a reserved way, and I understood that he meant a great deal more than that.</p>`,
				Order: 1,
			},
		},
		Metadata: &store.Metadata{
			Description:   "A tragic story of Jay Gatsby and his pursuit of the American Dream in the Jazz Age.",
			Publisher:     "Charles Scribner's Sons",
			PublishedDate: "1925",
		},
	},
	{
		ID:       "5",
		Title:    "Moby-Dick",
		Author:   "Herman Melville",
		Cover:    "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop",
		Progress: 5,
		Chapters: []store.Chapter{
			{
				ID:    "ch1-moby",
				Title: "Chapter 1: Loomings",
				Content: `<h1>Chapter 1: Loomings</h1>
<p>Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse, and nothing particular to interest me on shore, I thought I would sail about a little and see the watery part of the world.</p>
<p>It is a way I have of driving off the spleen and regulating the circulation.</p>`,
				Order: 1,
			},
		},
		Metadata: &store.Metadata{
			Description:   "The narrative of Captain Ahab's obsessive quest to revenge himself on Moby Dick, the giant white whale.",
			Publisher:     "Harper & Brothers",
			PublishedDate: "1851",
		},
	},
	{
		ID:       "6",
		Title:    "The Catcher in the Rye",
		Author:   "J.D. Salinger",
		Cover:    "https://images.unsplash.com/photo-1495446815901-a7297e633e8d?w=400&h=600&fit=crop",
		Progress: 89,
		Chapters: []store.Chapter{
			{
				ID:    "ch1-catcher",
				Title: "Chapter 1",
				Content: `<h1>Chapter 1</h1>
<p>If you really want to hear about it, the first thing you'll probably want to know is where I was born, and what my lousy childhood was like, and how my parents were occupied and all before they had me, but I don't feel like going into it, if you want to know the truth.</p>
<p>In the first place, that stuff bores me, and in the second place, my parents would have about two hemorrhages apiece if I told anything pretty personal about them.</p>`,
				Order: 1,
			},
		},
		Metadata: &store.Metadata{
			Description:   "A story about teenage rebellion and alienation, narrated by Holden Caulfield.",
			Publisher:     "Little, Brown and Company",
			PublishedDate: "1951",
		},
	},
}

var seedNotes = []store.Note{
	{
		ID:           "n1",
		BookID:       "1",
		Text:         "The author describes an interesting contradiction here that will become important later in the story.",
		SelectedText: "interesting contradiction",
		Chapter:      1,
		Timestamp:    1732552361,
	},
	{
		ID:           "n2",
		BookID:       "1",
		Text:         "This choice seems to be the turning point of the entire narrative.",
		SelectedText: "choice that will define their journey",
		Chapter:      1,
		Timestamp:    1732552400,
	},
	{
		ID:           "n3",
		BookID:       "2",
		Text:         "Key insight about the ethical implications of AI development.",
		SelectedText: "touching on ethics, society",
		Chapter:      1,
		Timestamp:    1732552500,
	},
}

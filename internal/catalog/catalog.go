// Package catalog holds the read-only book catalog supplied by an external
// manifest. The catalog is immutable for the lifetime of a session; the
// session controller only ever looks books and chapters up by ID.
package catalog

// Chapter is a single playable unit of a book. Num is unique within its
// book and is the ordering key of the chapter sequence.
type Chapter struct {
	Num      int    `json:"num"`
	Title    string `json:"title"`
	MediaRef string `json:"url"`
}

// Book is an audiobook with an ordered chapter sequence.
type Book struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	CoverRef string    `json:"cover"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter returns the chapter with the given number, or nil.
func (b *Book) Chapter(num int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].Num == num {
			return &b.Chapters[i]
		}
	}
	return nil
}

// FirstChapter returns the first chapter of the book, or nil if the book
// has no chapters.
func (b *Book) FirstChapter() *Chapter {
	if len(b.Chapters) == 0 {
		return nil
	}
	return &b.Chapters[0]
}

// NextChapter returns the chapter following num in the book's sequence,
// or nil if num is the last chapter or not part of the book.
func (b *Book) NextChapter(num int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].Num == num && i+1 < len(b.Chapters) {
			return &b.Chapters[i+1]
		}
	}
	return nil
}

// PrevChapter returns the chapter preceding num in the book's sequence,
// or nil if num is the first chapter or not part of the book.
func (b *Book) PrevChapter(num int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].Num == num && i > 0 {
			return &b.Chapters[i-1]
		}
	}
	return nil
}

// FindBook returns the book with the given ID, or nil.
func FindBook(books []Book, id string) *Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}

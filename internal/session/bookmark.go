package session

import "time"

// bookmarkDedupWindow is the position tolerance within which a new
// bookmark for the same book and chapter is treated as a duplicate of
// the most recent one.
const bookmarkDedupWindow = 1.0 // seconds

// Bookmark is a durable snapshot of a listening position. Bookmarks are
// never mutated after creation and are deleted only by explicit ID. Book
// and chapter titles are denormalized so a bookmark stays displayable
// even if the catalog changes underneath it.
type Bookmark struct {
	ID           string    `json:"id"`
	BookID       string    `json:"bookId"`
	BookTitle    string    `json:"bookTitle"`
	ChapterNum   int       `json:"chapterNum"`
	ChapterTitle string    `json:"chapterTitle"`
	Position     float64   `json:"position"`
	CreatedAt    time.Time `json:"createdAt"`
}

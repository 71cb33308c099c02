// Package store persists the playback session across restarts. Storage
// is best-effort: callers swallow write errors and treat a missing or
// unreadable record exactly like an empty store.
package store

import "github.com/abertrand/fable/internal/session"

// PlayerSnapshot is the durable last-played record.
type PlayerSnapshot struct {
	BookID       string  `json:"bookId"`
	ChapterNum   int     `json:"chapterNum"`
	Position     float64 `json:"position"`
	PlaybackRate float64 `json:"playbackRate"`
	Volume       float64 `json:"volume"`
}

// Interface defines the storage capability injected into the playback
// controller, so tests run without a real backend.
type Interface interface {
	GetPlayer() (*PlayerSnapshot, error)
	SavePlayer(snapshot PlayerSnapshot) error
	GetBookmarks() ([]session.Bookmark, error)
	SaveBookmarks(bookmarks []session.Bookmark) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)

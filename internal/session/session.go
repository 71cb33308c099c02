// Package session holds the canonical playback session state and its pure
// transition function. State values are immutable: every transition
// returns a new value and never mutates its input, so replaying the same
// action sequence from the same initial state is exactly reproducible.
//
// The package is free of side effects. Anything that touches the media
// driver, timers or storage belongs to the playback controller.
package session

import "github.com/abertrand/fable/internal/catalog"

// Track identifies the active playback unit: one chapter of one book.
// The chapter always belongs to the book's chapter sequence.
type Track struct {
	Book    catalog.Book
	Chapter catalog.Chapter
}

// State is the session aggregate owned by the controller.
type State struct {
	// Catalog snapshot and its derived filtered view.
	Books         []catalog.Book
	FilteredBooks []catalog.Book
	SearchQuery   string
	IsLoading     bool

	// SelectedBookID is the book open in the detail view, by identity
	// only. Empty means the library view is showing.
	SelectedBookID string

	CurrentTrack *Track

	// IsPlaying is desired playback state, not necessarily what the
	// driver has confirmed yet.
	IsPlaying    bool
	Position     float64 // elapsed seconds into CurrentTrack
	Duration     float64 // seconds, 0 until the driver reports metadata
	PlaybackRate float64
	Volume       float64 // [0,1]

	ChapterListVisible bool

	Bookmarks  []Bookmark // newest first
	SleepTimer SleepTimer
	Toasts     []Toast
}

// New returns the initial session state.
func New() State {
	return State{
		IsLoading:    true,
		PlaybackRate: Rates[0],
		Volume:       1,
		SleepTimer:   SleepTimer{Kind: SleepOff},
	}
}

// SelectedBook looks the selected book up in the catalog snapshot, or nil.
func (s State) SelectedBook() *catalog.Book {
	if s.SelectedBookID == "" {
		return nil
	}
	return catalog.FindBook(s.Books, s.SelectedBookID)
}

package session

import (
	"time"

	"github.com/abertrand/fable/internal/catalog"
)

// Action is the closed set of session state transitions. Every user
// intent and every media driver event is translated into one of these
// before it touches the state.
type Action interface {
	action()
}

// SetCatalog replaces the catalog snapshot and clears the loading flag.
type SetCatalog struct {
	Books []catalog.Book
}

// SetSearchQuery recomputes the filtered catalog view.
type SetSearchQuery struct {
	Query string
}

// SelectBook opens a book's detail view. If the book differs from the
// current track's book, playback resets to its first chapter, paused.
type SelectBook struct {
	Book catalog.Book
}

// ClearSelectedBook returns to the library view.
type ClearSelectedBook struct{}

// SelectTrack replaces the current track and resets position to 0.
type SelectTrack struct {
	Book    catalog.Book
	Chapter catalog.Chapter
}

// SetPlaying sets playback intent.
type SetPlaying struct {
	Playing bool
}

// SetPosition records the elapsed seconds into the current track.
type SetPosition struct {
	Seconds float64
}

// SetDuration records the driver-reported track duration.
type SetDuration struct {
	Seconds float64
}

// SetRate sets the playback rate directly (hydration and tests).
type SetRate struct {
	Rate float64
}

// CyclePlaybackRate advances to the next rate, wrapping to the first.
type CyclePlaybackRate struct{}

// SetVolume sets the volume, clamped to [0,1].
type SetVolume struct {
	Volume float64
}

// ToggleChapterList flips the chapter list visibility flag.
type ToggleChapterList struct{}

// SetBookmarks replaces the bookmark list wholesale (hydration only).
type SetBookmarks struct {
	Bookmarks []Bookmark
}

// AddBookmark snapshots the current track and position. The caller
// supplies the identity and timestamp so the transition stays pure.
type AddBookmark struct {
	ID  string
	Now time.Time
}

// DeleteBookmark removes a bookmark by ID.
type DeleteBookmark struct {
	ID string
}

// SetSleepTimer replaces the declared sleep timer. The controller owns
// the scheduled countdown handle; this only tracks the declared kind.
type SetSleepTimer struct {
	Timer SleepTimer
}

// AddToast appends a notification.
type AddToast struct {
	ID       string
	Message  string
	Severity Severity
}

// RemoveToast dismisses a notification by ID. Idempotent.
type RemoveToast struct {
	ID string
}

func (SetCatalog) action()        {}
func (SetSearchQuery) action()    {}
func (SelectBook) action()        {}
func (ClearSelectedBook) action() {}
func (SelectTrack) action()       {}
func (SetPlaying) action()        {}
func (SetPosition) action()       {}
func (SetDuration) action()       {}
func (SetRate) action()           {}
func (CyclePlaybackRate) action() {}
func (SetVolume) action()         {}
func (ToggleChapterList) action() {}
func (SetBookmarks) action()      {}
func (AddBookmark) action()       {}
func (DeleteBookmark) action()    {}
func (SetSleepTimer) action()     {}
func (AddToast) action()          {}
func (RemoveToast) action()       {}

package playback

import (
	"time"

	"github.com/google/uuid"

	"github.com/abertrand/fable/internal/catalog"
	"github.com/abertrand/fable/internal/session"
)

// SelectBook opens a book's detail view. A book other than the current
// track's resets playback to its first chapter, paused.
func (c *Controller) SelectBook(book catalog.Book) {
	c.Dispatch(session.SelectBook{Book: book})
}

// BackToLibrary returns to the library view without touching playback.
func (c *Controller) BackToLibrary() {
	c.Dispatch(session.ClearSelectedBook{})
}

// SelectChapter plays the given chapter. Selecting the chapter that is
// already current toggles play/pause instead of restarting it.
func (c *Controller) SelectChapter(book catalog.Book, chapter catalog.Chapter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	current := c.state.CurrentTrack
	if current != nil && current.Chapter.MediaRef == chapter.MediaRef {
		c.applyLocked(session.SetPlaying{Playing: !c.state.IsPlaying})
	} else {
		c.applyLocked(session.SelectTrack{Book: book, Chapter: chapter})
		c.applyLocked(session.SetPlaying{Playing: true})
	}
	c.reconcileLocked()
	if !c.state.IsPlaying {
		c.flushLocked()
	}
	c.notifyLocked()
}

// TogglePlay flips the playing intent. No-op without a current track.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}
	c.applyLocked(session.SetPlaying{Playing: !c.state.IsPlaying})
	c.reconcileLocked()
	if !c.state.IsPlaying {
		c.flushLocked()
	}
	c.notifyLocked()
}

// SeekTo seeks the driver and synchronously updates the displayed
// position, so the position never lags an explicit seek.
func (c *Controller) SeekTo(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}
	c.seekLocked(seconds)
	c.notifyLocked()
}

func (c *Controller) seekLocked(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if c.state.Duration > 0 && seconds > c.state.Duration {
		seconds = c.state.Duration
	}
	c.driver.Seek(seconds)
	c.applyLocked(session.SetPosition{Seconds: seconds})
}

// SkipBack rewinds by the configured skip step.
func (c *Controller) SkipBack() {
	c.skipBy(-c.skipSeconds)
}

// SkipForward advances by the configured skip step.
func (c *Controller) SkipForward() {
	c.skipBy(c.skipSeconds)
}

func (c *Controller) skipBy(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}
	c.seekLocked(c.driver.Position() + delta)
	c.notifyLocked()
}

// NextChapter steps to the next chapter in the book's sequence and
// plays it. No-op on the last chapter.
func (c *Controller) NextChapter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}
	track := c.state.CurrentTrack
	next := track.Book.NextChapter(track.Chapter.Num)
	if next == nil {
		return
	}
	c.applyLocked(session.SelectTrack{Book: track.Book, Chapter: *next})
	c.applyLocked(session.SetPlaying{Playing: true})
	c.reconcileLocked()
	c.notifyLocked()
}

// PrevChapter restarts the current chapter when more than a few seconds
// in, otherwise steps back to the previous chapter and plays it.
func (c *Controller) PrevChapter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}

	if c.driver.Position() > prevChapterThreshold {
		c.seekLocked(0)
		c.notifyLocked()
		return
	}

	track := c.state.CurrentTrack
	prev := track.Book.PrevChapter(track.Chapter.Num)
	if prev == nil {
		return
	}
	c.applyLocked(session.SelectTrack{Book: track.Book, Chapter: *prev})
	c.applyLocked(session.SetPlaying{Playing: true})
	c.reconcileLocked()
	c.notifyLocked()
}

// CyclePlaybackRate advances to the next playback rate.
func (c *Controller) CyclePlaybackRate() {
	c.Dispatch(session.CyclePlaybackRate{})
}

// SetVolume sets the volume.
func (c *Controller) SetVolume(volume float64) {
	c.Dispatch(session.SetVolume{Volume: volume})
}

// SetSearchQuery recomputes the filtered catalog view.
func (c *Controller) SetSearchQuery(query string) {
	c.Dispatch(session.SetSearchQuery{Query: query})
}

// ToggleChapterList flips the chapter list visibility.
func (c *Controller) ToggleChapterList() {
	c.Dispatch(session.ToggleChapterList{})
}

// SetSleepTimer replaces the sleep timer. Any outstanding countdown
// handle is canceled before the new schedule is applied, so at most one
// scheduled callback exists at a time.
func (c *Controller) SetSleepTimer(timer session.SleepTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.sleepTimer != nil {
		c.sleepTimer.Stop()
		c.sleepTimer = nil
	}
	c.applyLocked(session.SetSleepTimer{Timer: timer})
	if timer.Kind == session.SleepCountdown {
		c.sleepTimer = time.AfterFunc(time.Duration(timer.Minutes)*time.Minute, c.sleepTimerFired)
	}
	c.notifyLocked()
}

// sleepTimerFired is the countdown deadline callback: it turns the
// timer off and stops playback.
func (c *Controller) sleepTimerFired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.SleepTimer.Kind != session.SleepCountdown {
		return
	}
	c.sleepTimer = nil
	c.applyLocked(session.SetSleepTimer{Timer: session.SleepTimer{Kind: session.SleepOff}})
	c.applyLocked(session.SetPlaying{Playing: false})
	c.reconcileLocked()
	c.flushLocked()
	c.notifyLocked()
}

// AddBookmark snapshots the current position. Near-duplicates of the
// most recent bookmark are suppressed by the transition; the
// confirmation toast shows either way, matching a double-tap feeling
// instantaneous to the user.
func (c *Controller) AddBookmark() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.CurrentTrack == nil {
		return
	}
	c.applyLocked(session.AddBookmark{ID: uuid.NewString(), Now: time.Now()})
	c.saveBookmarksLocked()
	c.toastLocked("Bookmark added!", session.SeveritySuccess)
	c.notifyLocked()
}

// DeleteBookmark removes a bookmark by ID.
func (c *Controller) DeleteBookmark(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.applyLocked(session.DeleteBookmark{ID: id})
	c.saveBookmarksLocked()
	c.notifyLocked()
}

// JumpToBookmark opens the bookmark's book, switches to its chapter and
// resumes playback at the saved position.
func (c *Controller) JumpToBookmark(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	var bm *session.Bookmark
	for i := range c.state.Bookmarks {
		if c.state.Bookmarks[i].ID == id {
			bm = &c.state.Bookmarks[i]
			break
		}
	}
	if bm == nil {
		return
	}
	book := catalog.FindBook(c.state.Books, bm.BookID)
	if book == nil {
		return
	}
	chapter := book.Chapter(bm.ChapterNum)
	if chapter == nil {
		return
	}

	pos := bm.Position
	sameRef := c.loadedRef == chapter.MediaRef
	dur := c.state.Duration
	c.applyLocked(session.SelectBook{Book: *book})
	c.applyLocked(session.SelectTrack{Book: *book, Chapter: *chapter})
	c.applyLocked(session.SetPlaying{Playing: true})
	if c.state.ChapterListVisible {
		c.applyLocked(session.ToggleChapterList{})
	}
	c.reconcileLocked()
	if sameRef {
		// Already loaded; no metadata event will come, seek now.
		c.applyLocked(session.SetDuration{Seconds: dur})
		c.seekLocked(pos)
	} else {
		c.pendingSeek = &pos
	}
	c.notifyLocked()
}

// DismissToast removes a notification. Safe to call after the toast
// already expired.
func (c *Controller) DismissToast(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.applyLocked(session.RemoveToast{ID: id})
	c.notifyLocked()
}

// ShowToast surfaces a self-expiring notification.
func (c *Controller) ShowToast(message string, severity session.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.toastLocked(message, severity)
	c.notifyLocked()
}

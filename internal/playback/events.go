package playback

import (
	"github.com/abertrand/fable/internal/driver"
	"github.com/abertrand/fable/internal/errmsg"
	"github.com/abertrand/fable/internal/session"
)

// handleDriverEvent feeds one driver completion back into the session.
// Events for any generation other than the current one belong to a
// since-replaced track and are discarded, not applied.
func (c *Controller) handleDriverEvent(e driver.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || e.Generation() != c.gen {
		return
	}

	switch e := e.(type) {
	case driver.Progress:
		c.applyLocked(session.SetPosition{Seconds: e.Position})

	case driver.MetadataReady:
		c.applyLocked(session.SetDuration{Seconds: e.Duration})
		if c.pendingSeek != nil {
			// Exactly one seek per restore, even when metadata
			// arrives after progress ticks already started.
			pos := *c.pendingSeek
			c.pendingSeek = nil
			c.driver.Seek(pos)
			c.applyLocked(session.SetPosition{Seconds: pos})
		}

	case driver.Ended:
		c.handleTrackEndedLocked()

	case driver.Error:
		c.applyLocked(session.SetPlaying{Playing: false})
		c.toastLocked(errmsg.FormatWith(errmsg.OpPlaybackStart, c.trackTitleLocked(), e.Err), session.SeverityError)
		c.flushLocked()
	}

	c.notifyLocked()
}

// trackTitleLocked names the current chapter for error messages, empty
// when nothing is loaded.
func (c *Controller) trackTitleLocked() string {
	if c.state.CurrentTrack == nil {
		return ""
	}
	return c.state.CurrentTrack.Chapter.Title
}

// handleTrackEndedLocked decides what follows the end of a track: an
// end-of-chapter sleep timer stops playback and clears itself,
// otherwise the next chapter auto-plays, and the last chapter of a book
// stops with the position left at track end.
func (c *Controller) handleTrackEndedLocked() {
	if c.state.SleepTimer.Kind == session.SleepEndOfChapter {
		c.applyLocked(session.SetPlaying{Playing: false})
		c.applyLocked(session.SetSleepTimer{Timer: session.SleepTimer{Kind: session.SleepOff}})
		c.reconcileLocked()
		c.flushLocked()
		return
	}

	track := c.state.CurrentTrack
	if track == nil {
		return
	}
	next := track.Book.NextChapter(track.Chapter.Num)
	if next == nil {
		c.applyLocked(session.SetPlaying{Playing: false})
		c.reconcileLocked()
		c.flushLocked()
		return
	}

	c.applyLocked(session.SelectTrack{Book: track.Book, Chapter: *next})
	c.applyLocked(session.SetPlaying{Playing: true})
	c.reconcileLocked()
}

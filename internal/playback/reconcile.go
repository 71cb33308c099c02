package playback

import (
	"errors"

	"github.com/abertrand/fable/internal/driver"
	"github.com/abertrand/fable/internal/errmsg"
	"github.com/abertrand/fable/internal/session"
)

// reconcileLocked brings the driver in line with the session's desired
// track and playing intent. The media ref is loaded only when it differs
// from what the driver currently holds; a play rejected because a newer
// request superseded it is expected and ignored, any other play failure
// reverts the playing intent and surfaces a notification.
// Callers hold c.mu.
func (c *Controller) reconcileLocked() {
	track := c.state.CurrentTrack
	if track == nil {
		c.driver.Pause()
		return
	}

	if ref := track.Chapter.MediaRef; ref != c.loadedRef {
		c.loadedRef = ref
		c.gen = c.driver.Load(ref)
		c.pendingSeek = nil
		c.driver.SetRate(c.state.PlaybackRate)
		c.driver.SetVolume(c.state.Volume)
	}

	if !c.state.IsPlaying {
		c.driver.Pause()
		return
	}

	if err := c.driver.Play(); err != nil {
		if errors.Is(err, driver.ErrAborted) {
			// Pre-empted by a newer request.
			return
		}
		c.applyLocked(session.SetPlaying{Playing: false})
		c.toastLocked(errmsg.FormatWith(errmsg.OpPlaybackStart, track.Chapter.Title, err), session.SeverityError)
		c.flushLocked()
	}
}

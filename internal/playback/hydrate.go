package playback

import (
	"context"

	"github.com/abertrand/fable/internal/catalog"
	"github.com/abertrand/fable/internal/errmsg"
	"github.com/abertrand/fable/internal/session"
)

// LoadCatalog fetches the manifest and hydrates the session from
// storage. A failed fetch degrades to an empty catalog plus an error
// notification; the app stays usable. Storage read failures are fully
// silent: the session behaves as if the store were empty.
func (c *Controller) LoadCatalog(ctx context.Context) {
	books, err := c.catalog.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if err != nil {
		c.applyLocked(session.SetCatalog{Books: nil})
		c.toastLocked(errmsg.Format(errmsg.OpCatalogLoad, err), session.SeverityError)
		c.notifyLocked()
		return
	}

	c.applyLocked(session.SetCatalog{Books: books})
	c.hydrateLocked()
	c.notifyLocked()
}

// hydrateLocked restores the saved snapshot and bookmarks. The restored
// track loads paused; the saved position is applied by exactly one seek
// once the driver reports metadata.
func (c *Controller) hydrateLocked() {
	if snap, err := c.store.GetPlayer(); err == nil && snap != nil {
		if snap.PlaybackRate > 0 {
			c.applyLocked(session.SetRate{Rate: snap.PlaybackRate})
		}
		c.applyLocked(session.SetVolume{Volume: snap.Volume})

		if book := catalog.FindBook(c.state.Books, snap.BookID); book != nil {
			if chapter := book.Chapter(snap.ChapterNum); chapter != nil {
				pos := snap.Position
				c.applyLocked(session.SelectTrack{Book: *book, Chapter: *chapter})
				c.reconcileLocked()
				c.pendingSeek = &pos
			}
		}
	}

	if bookmarks, err := c.store.GetBookmarks(); err == nil && bookmarks != nil {
		c.applyLocked(session.SetBookmarks{Bookmarks: bookmarks})
	}
}

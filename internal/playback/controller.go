// Package playback is the session controller: it owns the canonical
// session state, drives the media driver from state deltas, feeds driver
// events back in as actions, and persists the session across restarts.
//
// Every transition runs under one mutex, so transitions are atomic with
// respect to each other. Driver completions arrive asynchronously and
// are tagged with the load generation they belong to; completions for a
// since-replaced track are discarded.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abertrand/fable/internal/catalog"
	"github.com/abertrand/fable/internal/driver"
	"github.com/abertrand/fable/internal/session"
	"github.com/abertrand/fable/internal/store"
)

const (
	defaultSkipSeconds   = 30.0
	defaultFlushInterval = 3 * time.Second
	defaultToastLifetime = 3 * time.Second

	// prevChapterThreshold: more than this far into a chapter, the
	// previous-chapter gesture restarts the chapter instead.
	prevChapterThreshold = 3.0 // seconds
)

// CatalogSource yields the book list at startup.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]catalog.Book, error)
}

// Options configures a Controller.
type Options struct {
	Driver  driver.Interface
	Store   store.Interface
	Catalog CatalogSource

	SkipSeconds   float64
	FlushInterval time.Duration
	ToastLifetime time.Duration
}

// Controller is the playback session controller.
type Controller struct {
	mu sync.Mutex

	state   session.State
	driver  driver.Interface
	store   store.Interface
	catalog CatalogSource

	// gen is the driver load generation currently in effect; driver
	// events carrying any other generation are stale and dropped.
	gen       uint64
	loadedRef string

	// pendingSeek holds a restore position (hydration or bookmark
	// jump) applied by exactly one driver seek once metadata arrives.
	pendingSeek *float64

	// sleepTimer is the single owned countdown handle, replaced and
	// canceled atomically on reconfiguration.
	sleepTimer *time.Timer

	skipSeconds   float64
	flushInterval time.Duration
	toastLifetime time.Duration

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a controller and starts its background loops.
func New(opts Options) *Controller {
	c := &Controller{
		state:         session.New(),
		driver:        opts.Driver,
		store:         opts.Store,
		catalog:       opts.Catalog,
		skipSeconds:   opts.SkipSeconds,
		flushInterval: opts.FlushInterval,
		toastLifetime: opts.ToastLifetime,
		done:          make(chan struct{}),
	}
	if c.skipSeconds <= 0 {
		c.skipSeconds = defaultSkipSeconds
	}
	if c.flushInterval <= 0 {
		c.flushInterval = defaultFlushInterval
	}
	if c.toastLifetime <= 0 {
		c.toastLifetime = defaultToastLifetime
	}
	go c.eventLoop()
	go c.flushLoop()
	return c
}

// State returns a snapshot of the session state.
func (c *Controller) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies an action and runs any effects it implies. Intended
// for plain field updates; richer user intents have dedicated methods.
func (c *Controller) Dispatch(a session.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	prev := c.state
	c.applyLocked(a)
	c.afterTransitionLocked(prev)
	c.notifyLocked()
}

// applyLocked runs the pure transition. Callers hold c.mu.
func (c *Controller) applyLocked(a session.Action) {
	c.state = session.Transition(c.state, a)
}

// afterTransitionLocked reconciles side effects after a generic
// dispatch by comparing the previous and current state.
func (c *Controller) afterTransitionLocked(prev session.State) {
	if trackRef(c.state.CurrentTrack) != trackRef(prev.CurrentTrack) ||
		c.state.IsPlaying != prev.IsPlaying {
		c.reconcileLocked()
	}
	if c.state.PlaybackRate != prev.PlaybackRate {
		c.driver.SetRate(c.state.PlaybackRate)
	}
	if c.state.Volume != prev.Volume {
		c.driver.SetVolume(c.state.Volume)
	}
	if prev.IsPlaying && !c.state.IsPlaying {
		c.flushLocked()
	}
}

func trackRef(t *session.Track) string {
	if t == nil {
		return ""
	}
	return t.Chapter.MediaRef
}

// toastLocked appends a self-expiring notification. Expiry and manual
// dismissal converge on the same RemoveToast action, which is
// idempotent. Callers hold c.mu.
func (c *Controller) toastLocked(message string, severity session.Severity) {
	id := uuid.NewString()
	c.applyLocked(session.AddToast{ID: id, Message: message, Severity: severity})
	time.AfterFunc(c.toastLifetime, func() {
		c.DismissToast(id)
	})
}

// flushLocked persists the player snapshot, best-effort. Callers hold c.mu.
func (c *Controller) flushLocked() {
	track := c.state.CurrentTrack
	if track == nil {
		return
	}
	_ = c.store.SavePlayer(store.PlayerSnapshot{
		BookID:       track.Book.ID,
		ChapterNum:   track.Chapter.Num,
		Position:     c.state.Position,
		PlaybackRate: c.state.PlaybackRate,
		Volume:       c.state.Volume,
	})
}

// saveBookmarksLocked persists the bookmark list, best-effort.
func (c *Controller) saveBookmarksLocked() {
	_ = c.store.SaveBookmarks(c.state.Bookmarks)
}

// flushLoop coalesces frequent position changes into a periodic flush
// while playing. Pausing and teardown flush immediately instead.
func (c *Controller) flushLoop() {
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
		}
		c.mu.Lock()
		if c.state.IsPlaying {
			c.flushLocked()
		}
		c.mu.Unlock()
	}
}

func (c *Controller) eventLoop() {
	events := c.driver.Events()
	for {
		select {
		case <-c.done:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			c.handleDriverEvent(e)
		}
	}
}

// Close tears the session down: cancels timers, flushes state, and
// releases the driver. Safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.sleepTimer != nil {
		c.sleepTimer.Stop()
		c.sleepTimer = nil
	}
	close(c.done)
	c.flushLocked()
	c.saveBookmarksLocked()
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return c.driver.Close()
}

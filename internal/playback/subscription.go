package playback

import "github.com/abertrand/fable/internal/session"

const eventBufferSize = 16

// Subscription delivers session state snapshots to a subscriber.
type Subscription struct {
	StateChanged <-chan session.State
	Done         <-chan struct{}

	// Internal write channels
	stateCh chan session.State
	doneCh  chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan session.State, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state snapshot (non-blocking).
func (s *Subscription) sendState(state session.State) {
	select {
	case s.stateCh <- state:
	default:
		// Drop if buffer full; a newer snapshot follows
	}
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// notifyLocked fans the current state out to all subscribers. Callers
// hold c.mu.
func (c *Controller) notifyLocked() {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendState(c.state)
	}
}

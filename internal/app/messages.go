// Package app contains the terminal UI for fable. It is a thin shell:
// every user intent is forwarded to the playback controller, and the
// view renders whatever session snapshot the controller last published.
package app

import (
	"time"

	"github.com/abertrand/fable/internal/session"
)

// TickMsg is sent periodically to refresh the player bar.
type TickMsg time.Time

// StateMsg carries a session snapshot published by the controller.
type StateMsg session.State

// SubscriptionClosedMsg signals that the controller shut down.
type SubscriptionClosedMsg struct{}

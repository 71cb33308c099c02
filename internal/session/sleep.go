package session

import "fmt"

// SleepTimerKind tags the sleep timer variant.
type SleepTimerKind int

const (
	SleepOff SleepTimerKind = iota
	SleepEndOfChapter
	SleepCountdown
)

// SleepTimer is the declared sleep timer. At most one schedule is
// pending at a time; setting a new one supersedes the prior. The live
// countdown handle belongs to the controller, not the state.
type SleepTimer struct {
	Kind    SleepTimerKind
	Minutes int // countdown length, only meaningful for SleepCountdown
}

// String returns a short description for display.
func (t SleepTimer) String() string {
	switch t.Kind {
	case SleepOff:
		return "off"
	case SleepEndOfChapter:
		return "end of chapter"
	case SleepCountdown:
		return fmt.Sprintf("%dm", t.Minutes)
	default:
		return "unknown"
	}
}

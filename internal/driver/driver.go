// Package driver adapts one real streaming playback resource behind a
// small command/event contract. Commands are imperative and mostly
// asynchronous; completions come back on the event channel, tagged with
// the load generation they belong to so a caller can detect and discard
// completions for a since-replaced track.
package driver

import "errors"

// ErrAborted is returned by Play when the request was pre-empted by a
// newer load. Callers treat it as expected and ignore it.
var ErrAborted = errors.New("play aborted by newer load")

// Interface is the media driver contract consumed by the playback
// controller.
type Interface interface {
	// Load starts loading a media ref asynchronously and returns the
	// generation assigned to the request. Completion arrives as a
	// MetadataReady or Error event carrying that generation.
	Load(ref string) uint64
	// Play starts or resumes playback of the loaded (or loading) track.
	Play() error
	Pause()
	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64)
	SetRate(rate float64)
	SetVolume(volume float64)
	// Position reports the driver's current position in seconds.
	Position() float64
	Events() <-chan Event
	Close() error
}

// Event is a driver completion or notification. Gen identifies the load
// generation the event pertains to.
type Event interface {
	Generation() uint64
}

// Progress is a periodic position report while playing.
type Progress struct {
	Gen      uint64
	Position float64 // seconds
}

// MetadataReady signals that a load completed and real metadata is known.
type MetadataReady struct {
	Gen      uint64
	Duration float64 // seconds
}

// Ended signals that the track played to its end.
type Ended struct {
	Gen uint64
}

// Error signals a load or playback failure.
type Error struct {
	Gen uint64
	Err error
}

func (e Progress) Generation() uint64      { return e.Gen }
func (e MetadataReady) Generation() uint64 { return e.Gen }
func (e Ended) Generation() uint64         { return e.Gen }
func (e Error) Generation() uint64         { return e.Gen }

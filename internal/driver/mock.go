package driver

// Mock is a test double for the media driver. It records every command
// and lets tests emit events by hand, including events for stale
// generations.
type Mock struct {
	gen      uint64
	position float64

	loadCalls   []string
	playCalls   int
	pauseCalls  int
	seekCalls   []float64
	rateCalls   []float64
	volumeCalls []float64

	playErr error
	events  chan Event
	closed  bool
}

// NewMock creates a new mock driver for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) Load(ref string) uint64 {
	m.gen++
	m.loadCalls = append(m.loadCalls, ref)
	return m.gen
}

func (m *Mock) Play() error {
	m.playCalls++
	return m.playErr
}

func (m *Mock) Pause() { m.pauseCalls++ }

func (m *Mock) Seek(seconds float64) {
	m.seekCalls = append(m.seekCalls, seconds)
	m.position = seconds
}

func (m *Mock) SetRate(rate float64) { m.rateCalls = append(m.rateCalls, rate) }

func (m *Mock) SetVolume(volume float64) { m.volumeCalls = append(m.volumeCalls, volume) }

func (m *Mock) Position() float64 { return m.position }

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetPosition(seconds float64) { m.position = seconds }

func (m *Mock) Gen() uint64 { return m.gen }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) SeekCalls() []float64 { return m.seekCalls }

func (m *Mock) RateCalls() []float64 { return m.rateCalls }

func (m *Mock) VolumeCalls() []float64 { return m.volumeCalls }

func (m *Mock) Closed() bool { return m.closed }

// Emit delivers an event to the driver's subscriber.
func (m *Mock) Emit(e Event) {
	select {
	case m.events <- e:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

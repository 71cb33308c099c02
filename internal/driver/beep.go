package driver

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	eventBufferSize  = 64
	progressInterval = 500 * time.Millisecond
	resampleQuality  = 4
)

// Beep is the real media driver, playing mp3 and flac refs through the
// system speaker. Refs are opaque locators: local paths are opened
// directly, http(s) refs are fetched to a temp file first so the stream
// stays seekable.
type Beep struct {
	mu sync.Mutex

	gen        uint64
	loadCancel context.CancelFunc
	loadErr    error

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	resample *beep.Resampler
	volume   *effects.Volume
	file     *os.File
	tmpPath  string

	// ratioBase corrects the track sample rate to the speaker rate;
	// the effective resample ratio is rate * ratioBase.
	ratioBase float64
	rate      float64
	vol       float64

	started bool // speaker.Play issued for the current generation
	pending bool // Play requested before the load completed

	events chan Event
	done   chan struct{}
	closed bool
}

var speakerRate beep.SampleRate

// NewBeep creates the beep-backed driver.
func NewBeep() *Beep {
	d := &Beep{
		rate:   1,
		vol:    1,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	go d.progressLoop()
	return d
}

// Events returns the driver event channel.
func (d *Beep) Events() <-chan Event {
	return d.events
}

// Load starts loading ref asynchronously, superseding any load or
// playback in flight.
func (d *Beep) Load(ref string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.loadCancel != nil {
		d.loadCancel()
		d.loadCancel = nil
	}
	d.unloadLocked()
	d.loadErr = nil

	ctx, cancel := context.WithCancel(context.Background())
	d.loadCancel = cancel
	go d.load(ctx, gen, ref)
	return gen
}

func (d *Beep) load(ctx context.Context, gen uint64, ref string) {
	f, tmpPath, err := openRef(ctx, ref)
	if err != nil {
		d.finishLoad(gen, nil, beep.Format{}, nil, "", err)
		return
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(path.Ext(refPath(ref))) {
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		removeTemp(tmpPath)
		d.finishLoad(gen, nil, beep.Format{}, nil, "", fmt.Errorf("decode %s: %w", ref, err))
		return
	}
	d.finishLoad(gen, streamer, format, f, tmpPath, nil)
}

func (d *Beep) finishLoad(gen uint64, streamer beep.StreamSeekCloser, format beep.Format, f *os.File, tmpPath string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || d.closed {
		// Superseded while decoding; discard quietly.
		if streamer != nil {
			streamer.Close()
		}
		if f != nil {
			f.Close()
		}
		removeTemp(tmpPath)
		return
	}

	if err != nil {
		d.loadErr = err
		d.emit(Error{Gen: gen, Err: err})
		return
	}

	if speakerRate == 0 {
		speakerRate = format.SampleRate
		if err := speaker.Init(speakerRate, speakerRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			removeTemp(tmpPath)
			d.loadErr = err
			d.emit(Error{Gen: gen, Err: err})
			return
		}
	}

	d.streamer = streamer
	d.format = format
	d.file = f
	d.tmpPath = tmpPath
	d.ratioBase = float64(format.SampleRate) / float64(speakerRate)
	d.ctrl = &beep.Ctrl{Streamer: streamer}
	d.resample = beep.ResampleRatio(resampleQuality, d.rate*d.ratioBase, d.ctrl)
	d.volume = &effects.Volume{Streamer: d.resample, Base: 2}
	d.applyVolumeLocked()

	d.emit(MetadataReady{Gen: gen, Duration: format.SampleRate.D(streamer.Len()).Seconds()})

	if d.pending {
		d.pending = false
		d.startLocked(gen)
	}
}

// Play starts or resumes playback. If the load is still in flight the
// request is kept pending and starts on completion; a load that already
// failed reports its error here.
func (d *Beep) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrAborted
	}
	if d.loadErr != nil {
		return d.loadErr
	}
	if d.streamer == nil {
		d.pending = true
		return nil
	}
	return d.startLocked(d.gen)
}

func (d *Beep) startLocked(gen uint64) error {
	if gen != d.gen {
		return ErrAborted
	}
	if !d.started {
		d.started = true
		done := beep.Callback(func() {
			d.trackEnded(gen)
		})
		speaker.Play(beep.Seq(d.volume, done))
		return nil
	}
	speaker.Lock()
	d.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause suspends playback without releasing the stream.
func (d *Beep) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
	if d.ctrl == nil || !d.started {
		return
	}
	speaker.Lock()
	d.ctrl.Paused = true
	speaker.Unlock()
}

// Seek jumps to an absolute position in seconds.
func (d *Beep) Seek(seconds float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return
	}
	n := d.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if max := d.streamer.Len(); n > max {
		n = max
	}
	speaker.Lock()
	_ = d.streamer.Seek(n)
	speaker.Unlock()
}

// SetRate sets the playback rate multiplier.
func (d *Beep) SetRate(rate float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rate = rate
	if d.resample == nil {
		return
	}
	speaker.Lock()
	d.resample.SetRatio(rate * d.ratioBase)
	speaker.Unlock()
}

// SetVolume sets the linear volume in [0,1].
func (d *Beep) SetVolume(volume float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vol = volume
	if d.volume == nil {
		return
	}
	speaker.Lock()
	d.applyVolumeLocked()
	speaker.Unlock()
}

func (d *Beep) applyVolumeLocked() {
	if d.vol <= 0 {
		d.volume.Silent = true
		return
	}
	d.volume.Silent = false
	d.volume.Volume = math.Log2(d.vol)
}

// Position reports the current position in seconds.
func (d *Beep) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return 0
	}
	return d.format.SampleRate.D(d.streamer.Position()).Seconds()
}

// Close stops playback and releases all resources.
func (d *Beep) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if d.loadCancel != nil {
		d.loadCancel()
		d.loadCancel = nil
	}
	d.unloadLocked()
	close(d.done)
	return nil
}

// unloadLocked releases the current stream. Callers hold d.mu.
func (d *Beep) unloadLocked() {
	if d.started {
		speaker.Clear()
		d.started = false
	}
	if d.streamer != nil {
		d.streamer.Close()
		d.streamer = nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	removeTemp(d.tmpPath)
	d.tmpPath = ""
	d.ctrl = nil
	d.resample = nil
	d.volume = nil
	d.pending = false
}

func (d *Beep) progressLoop() {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
		}
		d.mu.Lock()
		if d.started && d.ctrl != nil && !d.ctrl.Paused && d.streamer != nil {
			pos := d.format.SampleRate.D(d.streamer.Position()).Seconds()
			d.emit(Progress{Gen: d.gen, Position: pos})
		}
		d.mu.Unlock()
	}
}

// trackEnded runs inside the speaker's streaming path, which holds the
// speaker lock. It must not take d.mu: control calls hold d.mu while
// waiting on the speaker. The generation is captured at start time and
// stale Ended events are filtered by the consumer.
func (d *Beep) trackEnded(gen uint64) {
	select {
	case d.events <- Ended{Gen: gen}:
	default:
	}
}

// emit sends an event without blocking.
func (d *Beep) emit(e Event) {
	select {
	case d.events <- e:
	default:
		// Drop if buffer full
	}
}

// openRef opens a media ref for decoding. http(s) refs are fetched to a
// temp file so the decoder can seek; the returned tmpPath is non-empty
// in that case and must be removed when the stream is released.
func openRef(ctx context.Context, ref string) (*os.File, string, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		f, err := os.Open(ref)
		return f, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", ref, resp.Status)
	}

	tmp, err := os.CreateTemp("", "fable-media-*"+path.Ext(refPath(ref)))
	if err != nil {
		return nil, "", err
	}
	if _, err := tmp.ReadFrom(resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, "", fmt.Errorf("download %s: %w", ref, err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, "", err
	}
	return tmp, tmp.Name(), nil
}

// refPath strips a URL query so the extension check sees the path part.
func refPath(ref string) string {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		return ref[:i]
	}
	return ref
}

func removeTemp(tmpPath string) {
	if tmpPath != "" {
		os.Remove(tmpPath)
	}
}

// Verify Beep implements Interface at compile time.
var _ Interface = (*Beep)(nil)

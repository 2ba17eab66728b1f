package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/core"
)

// storageFormat is the in-memory layout of loaded sounds
// 8-bit buffers arrive already quantized, so 16-bit storage is lossless for both depths
var storageFormat = beep.Format{NumChannels: 2, Precision: 2}

// sound is a loaded buffer ready to be streamed
type sound struct {
	buffer *beep.Buffer
	volume float64
}

// channel is one playback slot
type channel struct {
	voice  core.VoiceID
	fader  *fader
	out    beep.Streamer
	active bool
}

// Mixer is a fixed pool of playback slots mixed into one stereo stream
// Control calls and Stream may run on different goroutines
type Mixer struct {
	mu sync.Mutex

	cfg      Config
	open     bool
	sounds   []sound
	channels []channel
	next     core.VoiceID
	scratch  [][2]float64

	// Stats
	played  uint64
	dropped uint64
}

// NewMixer creates a closed mixer with the default slot count
func NewMixer() *Mixer {
	return &Mixer{
		channels: make([]channel, constant.VoiceLimit),
	}
}

// Open applies cfg; the mixer must be closed
func (m *Mixer) Open(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return ErrAlreadyOpen
	}
	m.cfg = cfg
	m.open = true
	return nil
}

// Close stops every voice and discards loaded sounds; safe to call when closed
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopAllLocked()
	m.sounds = nil
	m.open = false
	return nil
}

// Config returns the active config, ok is false while closed
func (m *Mixer) Config() (Config, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg, m.open
}

// StopAll silences every voice immediately
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAllLocked()
}

func (m *Mixer) stopAllLocked() {
	for i := range m.channels {
		m.channels[i] = channel{}
	}
}

// SetVoiceLimit resizes the slot pool; running voices are stopped
func (m *Mixer) SetVoiceLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n < 0 {
		n = 0
	}
	m.channels = make([]channel, n)
}

// VoiceLimit returns the slot pool size
func (m *Mixer) VoiceLimit() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

// Load copies buf into device storage
func (m *Mixer) Load(buf *core.SampleBuffer) (core.SoundID, error) {
	if buf == nil || buf.Len() == 0 {
		return 0, fmt.Errorf("%w: empty buffer", ErrUnknownSound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return 0, ErrNotOpen
	}

	format := storageFormat
	format.SampleRate = beep.SampleRate(m.cfg.SampleRate)
	stored := beep.NewBuffer(format)
	stored.Append(bufferStreamer(buf))

	m.sounds = append(m.sounds, sound{buffer: stored, volume: buf.Volume})
	return core.SoundID(len(m.sounds) - 1), nil
}

// bufferStreamer reads a SampleBuffer once as float frames
func bufferStreamer(buf *core.SampleBuffer) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= buf.Len() {
			return 0, false
		}
		for n < len(samples) && pos < buf.Len() {
			samples[n][0], samples[n][1] = buf.Float(pos)
			n++
			pos++
		}
		return n, true
	})
}

// Play starts a loaded sound in the first free slot
func (m *Mixer) Play(id core.SoundID, opts core.PlayOptions) (core.VoiceID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return core.NoVoice, ErrNotOpen
	}
	if id < 0 || int(id) >= len(m.sounds) {
		return core.NoVoice, fmt.Errorf("%w: %d", ErrUnknownSound, id)
	}

	slot := -1
	for i := range m.channels {
		if !m.channels[i].active {
			slot = i
			break
		}
	}
	if slot < 0 {
		m.dropped++
		return core.NoVoice, ErrNoFreeVoice
	}

	snd := m.sounds[id]
	var src beep.Streamer
	if opts.Loop {
		src = beep.Loop(-1, snd.buffer.Streamer(0, snd.buffer.Len()))
	} else {
		src = snd.buffer.Streamer(0, snd.buffer.Len())
	}

	f := newFader(src, m.frames(opts.FadeIn))
	v := m.next
	m.next++
	m.channels[slot] = channel{
		voice:  v,
		fader:  f,
		out:    newVolume(f, snd.volume),
		active: true,
	}
	m.played++
	return v, nil
}

// FadeOut ramps voice v to silence over d, then frees its slot
func (m *Mixer) FadeOut(v core.VoiceID, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch := m.find(v); ch != nil {
		ch.fader.release(m.frames(d))
		if ch.fader.done {
			*ch = channel{}
		}
	}
}

// Stop frees voice v immediately
func (m *Mixer) Stop(v core.VoiceID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch := m.find(v); ch != nil {
		*ch = channel{}
	}
}

// Active returns the number of occupied slots
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for i := range m.channels {
		if m.channels[i].active {
			n++
		}
	}
	return n
}

// Stats returns played and dropped voice counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played, m.dropped
}

// Stream implements beep.Streamer; a mixer never drains
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(samples)
	if len(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}

	for i := range m.channels {
		ch := &m.channels[i]
		if !ch.active {
			continue
		}

		tmp := m.scratch[:len(samples)]
		cn, cok := ch.out.Stream(tmp)
		for j := 0; j < cn; j++ {
			samples[j][0] += tmp[j][0]
			samples[j][1] += tmp[j][1]
		}
		if !cok || cn < len(samples) {
			*ch = channel{}
		}
	}

	return len(samples), true
}

func (m *Mixer) Err() error { return nil }

func (m *Mixer) find(v core.VoiceID) *channel {
	for i := range m.channels {
		if m.channels[i].active && m.channels[i].voice == v {
			return &m.channels[i]
		}
	}
	return nil
}

// frames converts d to a frame count at the open sample rate
func (m *Mixer) frames(d time.Duration) int {
	return beep.SampleRate(m.cfg.SampleRate).N(d)
}

package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/hatband/core"
)

// Sentinel errors
var (
	ErrInvalidConfig = errors.New("invalid device config")
	ErrNotOpen       = errors.New("device not open")
	ErrAlreadyOpen   = errors.New("device already open")
	ErrNoFreeVoice   = errors.New("no free voice")
	ErrUnknownSound  = errors.New("unknown sound")
)

// Config is the full output configuration applied on Open
type Config struct {
	SampleRate   int
	BitDepth     int // Signed bits, 8 or 16
	Channels     int // Output channel layout requested from the host
	BufferFrames int // Device buffer size, trades latency for stability
}

// Format returns the sample domain sounds are expected in
func (c Config) Format() core.Format {
	return core.Format{SampleRate: c.SampleRate, BitDepth: c.BitDepth}
}

// Validate checks the config against what the devices can honor
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.BitDepth != 8 && c.BitDepth != 16:
		return fmt.Errorf("%w: bit depth %d", ErrInvalidConfig, c.BitDepth)
	case c.Channels != 1 && c.Channels != 2 && c.Channels != 4 && c.Channels != 6:
		return fmt.Errorf("%w: channels %d", ErrInvalidConfig, c.Channels)
	case c.BufferFrames <= 0:
		return fmt.Errorf("%w: buffer frames %d", ErrInvalidConfig, c.BufferFrames)
	}
	return nil
}

// Device is a voice-based audio output
// Open/Close are destructive: closing stops every voice and discards loaded sounds
type Device interface {
	Open(cfg Config) error
	Close() error
	Config() (Config, bool)

	// StopAll silences every voice immediately
	StopAll()
	// SetVoiceLimit resizes the playback slot pool, stopping every voice
	SetVoiceLimit(n int)

	Load(buf *core.SampleBuffer) (core.SoundID, error)
	Play(id core.SoundID, opts core.PlayOptions) (core.VoiceID, error)
	FadeOut(v core.VoiceID, d time.Duration)
	Stop(v core.VoiceID)
}

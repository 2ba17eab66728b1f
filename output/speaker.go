package output

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// resampleQuality is the beep resampler quality used when a reopen changes rate
const resampleQuality = 4

// driverChannels is the layout beep's speaker always opens
const driverChannels = 2

// Driver is what the host audio driver actually runs with
// The speaker keeps one driver context per process, so only the first Open sets it
type Driver struct {
	SampleRate   int
	BufferFrames int
	Channels     int
}

// unmet lists the settings of cfg the driver does not apply
func (d Driver) unmet(cfg Config) []string {
	var out []string
	if cfg.SampleRate != d.SampleRate {
		out = append(out, fmt.Sprintf("sample rate %d (resampled to %d)", cfg.SampleRate, d.SampleRate))
	}
	if cfg.BufferFrames != d.BufferFrames {
		out = append(out, fmt.Sprintf("buffer %d frames (driver uses %d)", cfg.BufferFrames, d.BufferFrames))
	}
	if cfg.Channels != d.Channels {
		out = append(out, fmt.Sprintf("%d channels (driver uses %d)", cfg.Channels, d.Channels))
	}
	return out
}

// Speaker plays a Mixer through the host audio driver
// The driver is initialized once, at the first Open's rate and buffer size, always
// stereo; later opens clear it and replay a fresh stream, resampling when the rate
// differs. Config reports what was requested, Driver what is in force.
type Speaker struct {
	*Mixer

	mu          sync.Mutex
	initialized bool
	driver      Driver
	logger      *log.Logger
}

// NewSpeaker creates a closed speaker device; nil logger falls back to the default logger
func NewSpeaker(logger *log.Logger) *Speaker {
	if logger == nil {
		logger = log.Default()
	}
	return &Speaker{Mixer: NewMixer(), logger: logger}
}

// Open configures the mixer and attaches it to the speaker
func (s *Speaker) Open(cfg Config) error {
	if err := s.Mixer.Open(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rate := beep.SampleRate(cfg.SampleRate)
	if !s.initialized {
		if err := speaker.Init(rate, cfg.BufferFrames); err != nil {
			s.Mixer.Close()
			return fmt.Errorf("speaker init: %w", err)
		}
		s.initialized = true
		s.driver = Driver{SampleRate: cfg.SampleRate, BufferFrames: cfg.BufferFrames, Channels: driverChannels}
	}

	if unmet := s.driver.unmet(cfg); len(unmet) > 0 {
		s.logger.Printf("speaker: not applied: %s", strings.Join(unmet, ", "))
	}

	var out beep.Streamer = s.Mixer
	if cfg.SampleRate != s.driver.SampleRate {
		out = beep.Resample(resampleQuality, rate, beep.SampleRate(s.driver.SampleRate), s.Mixer)
	}
	speaker.Play(out)
	return nil
}

// Driver returns the settings the host driver runs with, false before the first Open
func (s *Speaker) Driver() (Driver, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver, s.initialized
}

// Close detaches the mixer from the speaker and closes it
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.initialized {
		speaker.Clear()
	}
	s.mu.Unlock()

	return s.Mixer.Close()
}

// Terminate releases the host audio driver; call once at process exit
func (s *Speaker) Terminate() {
	s.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Close()
	}
}

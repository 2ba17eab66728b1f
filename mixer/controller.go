package mixer

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/output"
)

// Sentinel errors
var (
	// ErrDeviceLost is returned when the device cannot be reopened after a mode change
	// There is no degraded mode, callers treat it as fatal
	ErrDeviceLost = errors.New("audio device lost")

	ErrNotInitialized = errors.New("mixer not initialized")
)

// ChangeFunc runs after every completed transition
// Loaded sounds do not survive a transition, so hooks reload them
type ChangeFunc func(m Mode) error

// Controller switches the output device between Normal and Synth configurations
// Owned by the control goroutine; not safe for concurrent use
type Controller struct {
	dev    output.Device
	logger *log.Logger

	state State
	hooks []ChangeFunc
}

// NewController wraps dev; nil logger falls back to the default logger
func NewController(dev output.Device, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{dev: dev, logger: logger}
}

// OnChange registers fn to run after each transition, in registration order
func (c *Controller) OnChange(fn ChangeFunc) {
	c.hooks = append(c.hooks, fn)
}

// EnterNormal switches to the sampled-instrument configuration
func (c *Controller) EnterNormal() error {
	return c.enter(Normal)
}

// EnterSynth switches to the 8-bit synthesizer configuration
func (c *Controller) EnterSynth() error {
	return c.enter(Synth)
}

// Enter switches to mode m
func (c *Controller) Enter(m Mode) error {
	return c.enter(m)
}

// Reset reopens the device in the active mode, dropping every voice and loaded sound
func (c *Controller) Reset() error {
	m, ok := c.Mode()
	if !ok {
		return ErrNotInitialized
	}
	return c.transition(m)
}

func (c *Controller) enter(m Mode) error {
	if c.state == stateOf(m) {
		return nil
	}
	return c.transition(m)
}

func (c *Controller) transition(m Mode) error {
	c.dev.StopAll()
	if err := c.dev.Close(); err != nil {
		c.logger.Printf("mixer: close before %s: %v", m, err)
	}

	cfg := m.Config()
	if err := c.dev.Open(cfg); err != nil {
		c.state = Uninitialized
		return fmt.Errorf("%w: open %s mode: %w", ErrDeviceLost, m, err)
	}
	c.dev.SetVoiceLimit(constant.VoiceLimit)
	c.state = stateOf(m)
	c.logger.Printf("mixer: entered %s mode (%d Hz, %d-bit, %d ch, %d frames)",
		m, cfg.SampleRate, cfg.BitDepth, cfg.Channels, cfg.BufferFrames)

	for _, fn := range c.hooks {
		if err := fn(m); err != nil {
			return fmt.Errorf("reload after %s transition: %w", m, err)
		}
	}
	return nil
}

// State returns the lifecycle state
func (c *Controller) State() State {
	return c.state
}

// Mode returns the active mode, ok is false while uninitialized
func (c *Controller) Mode() (Mode, bool) {
	switch c.state {
	case InNormal:
		return Normal, true
	case InSynth:
		return Synth, true
	default:
		return Normal, false
	}
}

// Format returns the sample domain of the active mode
func (c *Controller) Format() (core.Format, bool) {
	m, ok := c.Mode()
	if !ok {
		return core.Format{}, false
	}
	return m.Config().Format(), true
}

// Device returns the controlled output device
func (c *Controller) Device() output.Device {
	return c.dev
}

// Package config resolves runtime settings from defaults, environment and flags
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/synth"
)

// Environment variables
const (
	EnvSoundsDir = "HATBAND_SOUNDS_DIR"
	EnvPiano     = "HATBAND_PIANO"
	EnvDrums     = "HATBAND_DRUMS"
	EnvHoldMS    = "HATBAND_HOLD_MS"
	EnvHeadless  = "HATBAND_HEADLESS"
	EnvVolumes   = "HATBAND_VOLUMES"
)

// Config holds everything the binary needs to start the rig
type Config struct {
	SoundsDir string
	Piano     string // Sound set for the piano slot
	Drums     string // Sound set for the drum pads
	Hold      time.Duration
	Headless  bool
	Debug     bool
	Volumes   synth.Volumes
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		SoundsDir: "sounds",
		Piano:     "piano",
		Drums:     "drums2",
		Hold:      constant.KeyHoldTimeout,
		Volumes:   synth.DefaultVolumes(),
	}
}

// Load overlays HATBAND_* environment variables on the defaults
// Malformed values are ignored
func Load() *Config {
	cfg := Default()

	if dir := os.Getenv(EnvSoundsDir); dir != "" {
		cfg.SoundsDir = dir
	}
	if piano := os.Getenv(EnvPiano); piano != "" {
		cfg.Piano = piano
	}
	if drums := os.Getenv(EnvDrums); drums != "" {
		cfg.Drums = drums
	}

	if hold := os.Getenv(EnvHoldMS); hold != "" {
		if val, err := strconv.Atoi(hold); err == nil && val > 0 {
			cfg.Hold = time.Duration(val) * time.Millisecond
		}
	}

	if headless := os.Getenv(EnvHeadless); headless != "" {
		if val, err := strconv.ParseBool(headless); err == nil {
			cfg.Headless = val
		}
	}

	// Waveform volumes from JSON, 0.0-1.0
	if vols := os.Getenv(EnvVolumes); vols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(vols), &volumes); err == nil {
			if v, ok := volumes["sine"]; ok {
				cfg.Volumes.Sine = clamp01(v)
			}
			if v, ok := volumes["square"]; ok {
				cfg.Volumes.Square = clamp01(v)
			}
			if v, ok := volumes["saw"]; ok {
				cfg.Volumes.Saw = clamp01(v)
			}
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package mixer

import (
	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/output"
)

// Mode is a named output configuration
type Mode int

const (
	Normal Mode = iota // Sampled instruments
	Synth              // 8-bit synthesizer
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Synth:
		return "synth"
	default:
		return "unknown"
	}
}

// Config returns the device configuration for the mode
func (m Mode) Config() output.Config {
	if m == Synth {
		return output.Config{
			SampleRate:   constant.SynthSampleRate,
			BitDepth:     constant.SynthBitDepth,
			Channels:     constant.SynthChannels,
			BufferFrames: constant.SynthBufferFrames,
		}
	}
	return output.Config{
		SampleRate:   constant.NormalSampleRate,
		BitDepth:     constant.NormalBitDepth,
		Channels:     constant.NormalChannels,
		BufferFrames: constant.NormalBufferFrames,
	}
}

// State is the controller lifecycle state
type State int

const (
	Uninitialized State = iota
	InNormal
	InSynth
)

func (s State) String() string {
	switch s {
	case InNormal:
		return "normal"
	case InSynth:
		return "synth"
	default:
		return "uninitialized"
	}
}

func stateOf(m Mode) State {
	if m == Synth {
		return InSynth
	}
	return InNormal
}

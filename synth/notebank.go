package synth

import (
	"fmt"

	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/core"
)

// Volumes is the static attenuation applied to each waveform's buffers
type Volumes struct {
	Sine   float64
	Square float64
	Saw    float64
}

// DefaultVolumes returns the stock waveform balance
func DefaultVolumes() Volumes {
	return Volumes{
		Sine:   constant.SineVolume,
		Square: constant.SquareVolume,
		Saw:    constant.SawVolume,
	}
}

// For returns the volume configured for kind
func (v Volumes) For(kind WaveformKind) float64 {
	switch kind {
	case Sine:
		return v.Sine
	case Square:
		return v.Square
	case Sawtooth:
		return v.Saw
	}
	return 0
}

// NoteBank holds the generated loop for every (waveform, pitch) pair
// Fully populated on construction; rebuild when the format changes
type NoteBank struct {
	format  core.Format
	buffers [kindCount][PitchCount]*core.SampleBuffer
}

// BuildNoteBank generates all PitchCount x 3 buffers in the generator's format
func BuildNoteBank(g Generator, volumes Volumes) (*NoteBank, error) {
	nb := &NoteBank{format: g.Format}

	for _, kind := range Kinds {
		for p, freq := range PitchClasses {
			buf, err := g.Generate(freq, kind, volumes.For(kind))
			if err != nil {
				return nil, fmt.Errorf("note bank %s/%d: %w", kind, p, err)
			}
			nb.buffers[kind][p] = buf
		}
	}

	return nb, nil
}

// Format returns the format all buffers were generated in
func (nb *NoteBank) Format() core.Format {
	return nb.format
}

// Buffer returns the loop for kind at pitch, nil when either is out of range
func (nb *NoteBank) Buffer(kind WaveformKind, pitch int) *core.SampleBuffer {
	if kind < 0 || kind >= kindCount || !validPitch(pitch) {
		return nil
	}
	return nb.buffers[kind][pitch]
}

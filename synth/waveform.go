package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/hatband/core"
)

// WaveformKind selects an oscillator shape
type WaveformKind int

const (
	Sine WaveformKind = iota
	Square
	Sawtooth
	kindCount
)

// Kinds lists every waveform in enable-set order
var Kinds = [...]WaveformKind{Sine, Square, Sawtooth}

func (k WaveformKind) String() string {
	switch k {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "saw"
	default:
		return "unknown"
	}
}

// ErrInvalidArgument reports a caller bug: bad frequency, volume, kind or format
var ErrInvalidArgument = errors.New("invalid argument")

// Generator renders single-period waveform loops in a fixed format
type Generator struct {
	Format core.Format
}

// Generate returns one fundamental period of kind at frequency
// Frame count is round(sampleRate/frequency), so the loop seam is not phase
// continuous for frequencies that do not divide the sample rate
func (g Generator) Generate(frequency float64, kind WaveformKind, volume float64) (*core.SampleBuffer, error) {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("%w: frequency %v", ErrInvalidArgument, frequency)
	}
	if !(volume >= 0 && volume <= 1) {
		return nil, fmt.Errorf("%w: volume %v", ErrInvalidArgument, volume)
	}
	if kind < 0 || kind >= kindCount {
		return nil, fmt.Errorf("%w: waveform kind %d", ErrInvalidArgument, kind)
	}
	if g.Format.SampleRate <= 0 || (g.Format.BitDepth != 8 && g.Format.BitDepth != 16) {
		return nil, fmt.Errorf("%w: format %+v", ErrInvalidArgument, g.Format)
	}

	rate := float64(g.Format.SampleRate)
	count := int(math.RoundToEven(rate / frequency))
	if count == 0 {
		return nil, fmt.Errorf("%w: frequency %v above sample rate", ErrInvalidArgument, frequency)
	}

	peak := float64(g.Format.MaxAmplitude())
	frames := make([][2]int16, count)
	for i := range frames {
		t := float64(i) / rate
		v := int16(amplitude(kind, frequency*t, peak))
		frames[i] = [2]int16{v, v}
	}

	return &core.SampleBuffer{
		Format: g.Format,
		Frames: frames,
		Volume: volume,
	}, nil
}

// amplitude evaluates kind at phase (cycles since t=0), scaled to peak
func amplitude(kind WaveformKind, phase, peak float64) float64 {
	switch kind {
	case Sine:
		return math.RoundToEven(peak * math.Sin(2*math.Pi*phase))
	case Square:
		if phase-math.Floor(phase) < 0.5 {
			return -peak
		}
		return peak
	case Sawtooth:
		return math.RoundToEven(peak * (2*phase - 1))
	}
	return 0
}

package core

import (
	"math"
	"time"
)

// Format describes the integer sample domain of a buffer
type Format struct {
	SampleRate int
	BitDepth   int // Signed bits per sample, 8 or 16
}

// MaxAmplitude returns the largest representable magnitude, 2^(bits-1) - 1
func (f Format) MaxAmplitude() int {
	return 1<<(f.BitDepth-1) - 1
}

// FullScale returns 2^(bits-1), the divisor mapping integers onto [-1, 1)
func (f Format) FullScale() float64 {
	return math.Ldexp(1, f.BitDepth-1)
}

// SampleBuffer is an immutable block of quantized stereo frames
// Mono sources are duplicated into both columns
type SampleBuffer struct {
	Format Format
	Frames [][2]int16

	// Volume is a static attenuation applied at playback, 0.0-1.0
	Volume float64
}

// Len returns the frame count
func (b *SampleBuffer) Len() int {
	return len(b.Frames)
}

// Float converts frame i to the [-1, 1) range the mixer works in
func (b *SampleBuffer) Float(i int) (l, r float64) {
	scale := b.Format.FullScale()
	return float64(b.Frames[i][0]) / scale, float64(b.Frames[i][1]) / scale
}

// SoundID identifies a buffer loaded into an output device
// IDs are invalidated when the device is closed
type SoundID int

// VoiceID identifies one playing instance of a loaded sound
type VoiceID int

// NoVoice is returned alongside errors from Play
const NoVoice VoiceID = -1

// PlayOptions controls how a loaded sound starts
type PlayOptions struct {
	Loop   bool          // Repeat until faded out or stopped
	FadeIn time.Duration // Linear gain ramp from silence, 0 = immediate
}

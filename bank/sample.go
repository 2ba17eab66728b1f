package bank

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/hatband/core"
)

// resampleQuality trades CPU for fidelity at load time only
const resampleQuality = 4

// Sample is one decoded sound file
type Sample struct {
	Name       string
	SampleRate int
	Frames     [][2]float64
}

// Len returns the frame count
func (s *Sample) Len() int {
	return len(s.Frames)
}

// Quantize converts the sample into the integer domain of format
// The rate is converted first when it differs from the file's
func (s *Sample) Quantize(format core.Format) *core.SampleBuffer {
	frames := s.Frames
	if s.SampleRate != format.SampleRate && s.SampleRate > 0 && format.SampleRate > 0 {
		frames = resample(frames, s.SampleRate, format.SampleRate)
	}

	peak := float64(format.MaxAmplitude())
	out := make([][2]int16, len(frames))
	for i, f := range frames {
		out[i][0] = quantize(f[0], peak)
		out[i][1] = quantize(f[1], peak)
	}

	return &core.SampleBuffer{Format: format, Frames: out, Volume: 1}
}

func quantize(v, peak float64) int16 {
	return int16(math.RoundToEven(math.Max(-1, math.Min(1, v)) * peak))
}

func resample(frames [][2]float64, from, to int) [][2]float64 {
	pos := 0
	src := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(frames) {
			return 0, false
		}
		n = copy(samples, frames[pos:])
		pos += n
		return n, true
	})

	r := beep.Resample(resampleQuality, beep.SampleRate(from), beep.SampleRate(to), src)
	return drain(r, len(frames)*to/from+1)
}

// drain reads s to exhaustion
func drain(s beep.Streamer, sizeHint int) [][2]float64 {
	out := make([][2]float64, 0, sizeHint)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

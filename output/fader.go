package output

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// fader applies a linear fade-in and an optional linear fade-out to a stream
// The stream ends when a fade-out reaches silence
type fader struct {
	streamer    beep.Streamer
	gain        float64
	attackStep  float64 // Gain added per frame until unity
	releaseStep float64 // Gain removed per frame once releasing
	releasing   bool
	done        bool
}

// newFader starts s at zero gain ramping to unity over attack frames
func newFader(s beep.Streamer, attack int) *fader {
	f := &fader{streamer: s, gain: 1}
	if attack > 0 {
		f.gain = 0
		f.attackStep = 1 / float64(attack)
	}
	return f
}

// release fades from the current gain to silence over frames
func (f *fader) release(frames int) {
	if f.done {
		return
	}
	if frames <= 0 || f.gain <= 0 {
		f.done = true
		return
	}
	f.releasing = true
	f.releaseStep = f.gain / float64(frames)
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	if f.done {
		return 0, false
	}

	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if f.releasing {
			f.gain -= f.releaseStep
			if f.gain <= 0 {
				f.gain = 0
				f.done = true
				return i, false
			}
		} else if f.gain < 1 {
			f.gain = math.Min(1, f.gain+f.attackStep)
		}

		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}

	if !ok {
		f.done = true
	}
	return n, ok
}

func (f *fader) Err() error { return f.streamer.Err() }

// newVolume wraps s in a static linear gain
// math.Log2(0) is -Inf, so 0 volume is handled by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

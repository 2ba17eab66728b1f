package output

import (
	"context"
	"time"
)

// Headless is a Mixer with no audio hardware behind it
// Nothing pulls the stream unless the caller renders it
type Headless struct {
	*Mixer
}

// NewHeadless creates a closed headless device
func NewHeadless() *Headless {
	return &Headless{Mixer: NewMixer()}
}

// Render pulls n frames of mixed output
func (h *Headless) Render(n int) [][2]float64 {
	out := make([][2]float64, n)
	h.Stream(out)
	return out
}

// Run pulls frames at the open sample rate until ctx is done
// so voices fade and end on the same clock as a real device
func (h *Headless) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var buf [][2]float64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		cfg, ok := h.Config()
		if !ok {
			continue
		}
		n := int(int64(cfg.SampleRate) * int64(tick) / int64(time.Second))
		if cap(buf) < n {
			buf = make([][2]float64, n)
		}
		h.Stream(buf[:n])
	}
}

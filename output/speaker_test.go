package output

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDriverUnmet verifies which requested settings a running driver reports as not applied
func TestDriverUnmet(t *testing.T) {
	normal := Config{SampleRate: 44100, BitDepth: 16, Channels: 1, BufferFrames: 512}
	synth := Config{SampleRate: 44100, BitDepth: 8, Channels: 4, BufferFrames: 256}
	driver := Driver{SampleRate: 44100, BufferFrames: 512, Channels: driverChannels}

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"first open", normal, []string{"1 channels (driver uses 2)"}},
		{"synth reopen", synth, []string{"buffer 256 frames (driver uses 512)", "4 channels (driver uses 2)"}},
		{"rate change", Config{SampleRate: 22050, BitDepth: 16, Channels: 2, BufferFrames: 512},
			[]string{"sample rate 22050 (resampled to 44100)"}},
		{"exact", Config{SampleRate: 44100, BitDepth: 16, Channels: 2, BufferFrames: 512}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, driver.unmet(tt.cfg)); diff != "" {
				t.Errorf("Unmet mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

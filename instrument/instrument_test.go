package instrument

import (
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/hatband/bank"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/synth"
)

// recordingPlayer issues sequential ids and records which sound each Play used
type recordingPlayer struct {
	loaded []*core.SampleBuffer
	played []core.SoundID
	faded  []core.VoiceID
	next   core.VoiceID
}

func (p *recordingPlayer) Load(buf *core.SampleBuffer) (core.SoundID, error) {
	p.loaded = append(p.loaded, buf)
	return core.SoundID(len(p.loaded) - 1), nil
}

func (p *recordingPlayer) Play(id core.SoundID, _ core.PlayOptions) (core.VoiceID, error) {
	p.played = append(p.played, id)
	p.next++
	return p.next, nil
}

func (p *recordingPlayer) FadeOut(v core.VoiceID, _ time.Duration) { p.faded = append(p.faded, v) }
func (p *recordingPlayer) Stop(core.VoiceID) {}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// makeSamples creates n short samples named 0..n-1
func makeSamples(n int) []*bank.Sample {
	out := make([]*bank.Sample, n)
	for i := range out {
		out[i] = &bank.Sample{
			Name:       fmt.Sprint(i),
			SampleRate: 44100,
			Frames:     [][2]float64{{0.5, 0.5}, {-0.5, -0.5}},
		}
	}
	return out
}

var normalFormat = core.Format{SampleRate: 44100, BitDepth: 16}

func TestPianoOctaves(t *testing.T) {
	tests := []struct {
		name        string
		samples     int
		wantOctave  int
		wantOctaves int
	}{
		{"three octaves", 36, 1, 3},
		{"partial fourth", 40, 1, 3},
		{"single octave", 13, 0, 1},
		{"short bank", 5, 0, 0},
		{"empty", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPiano("piano", makeSamples(tt.samples), &recordingPlayer{}, quietLogger())
			oct, octs := p.Octave()
			if oct != tt.wantOctave || octs != tt.wantOctaves {
				t.Errorf("Octave() = %d/%d, want %d/%d", oct, octs, tt.wantOctave, tt.wantOctaves)
			}
		})
	}
}

// TestPianoShiftClamps verifies octave stays within [0, octaves-1]
func TestPianoShiftClamps(t *testing.T) {
	p := NewPiano("piano", makeSamples(36), &recordingPlayer{}, quietLogger())

	p.ShiftUp()
	p.ShiftUp()
	p.ShiftUp()
	if oct, _ := p.Octave(); oct != 2 {
		t.Errorf("Expected octave clamped at 2, got %d", oct)
	}

	for range 5 {
		p.ShiftDown()
	}
	if oct, _ := p.Octave(); oct != 0 {
		t.Errorf("Expected octave clamped at 0, got %d", oct)
	}

	short := NewPiano("short", makeSamples(5), &recordingPlayer{}, quietLogger())
	short.ShiftUp()
	if oct, _ := short.Octave(); oct != 0 {
		t.Errorf("Expected bank without a full octave to stay at 0, got %d", oct)
	}
}

func TestPianoNoteOn(t *testing.T) {
	player := &recordingPlayer{}
	p := NewPiano("piano", makeSamples(36), player, quietLogger())
	if err := p.LoadVoices(normalFormat); err != nil {
		t.Fatal(err)
	}
	if len(player.loaded) != 36 {
		t.Fatalf("Expected 36 sounds loaded, got %d", len(player.loaded))
	}

	p.NoteOn(0)  // 12
	p.NoteOn(12) // 24
	p.ShiftUp()
	p.NoteOn(12) // 36, out of bank
	p.NoteOn(11) // 35
	p.NoteOn(13) // not a key
	p.NoteOn(-1)
	p.NoteOff(0)

	if diff := cmp.Diff([]core.SoundID{12, 24, 35}, player.played); diff != "" {
		t.Errorf("Played sounds mismatch (-want +got):\n%s", diff)
	}
}

func TestPianoNoteBeforeLoad(t *testing.T) {
	player := &recordingPlayer{}
	p := NewPiano("piano", makeSamples(13), player, quietLogger())
	p.NoteOn(0)
	if len(player.played) != 0 {
		t.Error("Expected nothing to play before LoadVoices")
	}
}

func TestDrums(t *testing.T) {
	player := &recordingPlayer{}
	d := NewDrums("drums2", makeSamples(6), player, quietLogger())
	d.LoadVoices(normalFormat)

	d.NoteOn(0)
	d.NoteOn(5)
	d.NoteOn(6) // pad without a sample
	d.NoteOn(8) // not a pad
	d.NoteOff(0)

	if diff := cmp.Diff([]core.SoundID{0, 5}, player.played); diff != "" {
		t.Errorf("Played sounds mismatch (-want +got):\n%s", diff)
	}
}

func TestSampledQuantizesToFormat(t *testing.T) {
	player := &recordingPlayer{}
	d := NewDrums("drums2", makeSamples(1), player, quietLogger())

	d.LoadVoices(core.Format{SampleRate: 44100, BitDepth: 8})
	if got := player.loaded[0].Frames[0][0]; got != 64 {
		t.Errorf("Expected 8-bit quantization, got %d", got)
	}
}

func TestSynthesizer(t *testing.T) {
	player := &recordingPlayer{}
	s := NewSynthesizer(player, synth.DefaultVolumes(), quietLogger())
	s.Voices().SetClock(func() time.Time { return time.Unix(0, 0) })

	if err := s.LoadVoices(core.Format{SampleRate: 44100, BitDepth: 8}); err != nil {
		t.Fatal(err)
	}
	if len(player.loaded) != 3*synth.PitchCount {
		t.Fatalf("Expected full note bank loaded, got %d", len(player.loaded))
	}

	s.NoteOn(0)
	if len(player.played) != 3 {
		t.Errorf("Expected three layers at index 0, got %d", len(player.played))
	}

	s.ShiftUp()
	if got := s.Waveforms().String(); got != "sine+square" {
		t.Errorf("Expected sine+square after shift, got %s", got)
	}
	s.NoteOn(1)
	if len(player.played) != 5 {
		t.Errorf("Expected two more layers, got %d total", len(player.played))
	}

	s.NoteOff(0)
	if len(player.faded) != 3 {
		t.Errorf("Expected all three pitch 0 layers faded, got %d", len(player.faded))
	}

	s.ShiftDown()
	s.ShiftDown()
	if got := s.Waveforms().String(); got != "sine+square+saw" {
		t.Errorf("Expected clamp at first combination, got %s", got)
	}
}

func TestSynthesizerReusesBank(t *testing.T) {
	s := NewSynthesizer(&recordingPlayer{}, synth.DefaultVolumes(), quietLogger())
	format := core.Format{SampleRate: 44100, BitDepth: 8}

	s.LoadVoices(format)
	first := s.bank
	s.LoadVoices(format)
	if s.bank != first {
		t.Error("Expected note bank reused for an unchanged format")
	}

	s.LoadVoices(normalFormat)
	if s.bank == first || s.bank.Format() != normalFormat {
		t.Error("Expected note bank rebuilt for a new format")
	}
}

func TestSynthesizerInvalidVolume(t *testing.T) {
	s := NewSynthesizer(&recordingPlayer{}, synth.Volumes{Sine: 2}, quietLogger())
	err := s.LoadVoices(core.Format{SampleRate: 44100, BitDepth: 8})
	if !errors.Is(err, synth.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

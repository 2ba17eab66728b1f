package instrument

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/lixenwraith/hatband/bank"
	"github.com/lixenwraith/hatband/mixer"
	"github.com/lixenwraith/hatband/synth"
)

// ErrUnknownSoundSet is returned for a sound-set name missing from the library
var ErrUnknownSoundSet = errors.New("unknown sound set")

// Library provides sound sets by name
type Library interface {
	Sets() ([]string, error)
	Load(name string) ([]*bank.Sample, error)
}

// Snapshot is the rig state shown to the player
type Snapshot struct {
	Instrument string
	Drums      string
	Mode       mixer.Mode
	Octave     int    // Piano only
	Octaves    int    // Piano only
	Waveforms  string // Synthesizer only
	Held       int    // Synthesizer only, pitches still sounding
}

// Rig is the piano slot plus the drum kit sharing one output device
// Owned by the control goroutine
type Rig struct {
	ctrl    *mixer.Controller
	library Library
	volumes synth.Volumes
	logger  *log.Logger

	sets  []string
	index int
	piano Instrument
	drums *Drums
}

// NewRig creates a rig driving ctrl's device
func NewRig(ctrl *mixer.Controller, library Library, volumes synth.Volumes, logger *log.Logger) *Rig {
	if logger == nil {
		logger = log.Default()
	}
	r := &Rig{ctrl: ctrl, library: library, volumes: volumes, logger: logger}
	ctrl.OnChange(r.reload)
	return r
}

// Start loads the drum kit and the first piano-slot instrument
func (r *Rig) Start(piano, drums string) error {
	sets, err := r.library.Sets()
	if err != nil {
		return err
	}
	r.sets = sets

	pi := slices.Index(sets, piano)
	if pi < 0 {
		return fmt.Errorf("%w: piano %q", ErrUnknownSoundSet, piano)
	}
	if drums == bank.SynthSet || !slices.Contains(sets, drums) {
		return fmt.Errorf("%w: drums %q", ErrUnknownSoundSet, drums)
	}

	samples, err := r.library.Load(drums)
	if err != nil {
		return err
	}
	r.drums = NewDrums(drums, samples, r.ctrl.Device(), r.logger)

	return r.activate(pi)
}

// NextInstrument cycles the piano slot to the next sound set, wrapping
// Sets that fail to load are skipped
func (r *Rig) NextInstrument() error {
	n := len(r.sets)
	for step := 1; step <= n; step++ {
		i := (r.index + step) % n
		err := r.activate(i)
		if err == nil {
			return nil
		}
		if errors.Is(err, mixer.ErrDeviceLost) {
			return err
		}
		r.logger.Printf("rig: skipping sound set %q: %v", r.sets[i], err)
	}
	return fmt.Errorf("rig: no loadable sound set")
}

// activate builds set i and switches the mixer to its mode
func (r *Rig) activate(i int) error {
	inst, err := r.build(r.sets[i])
	if err != nil {
		return err
	}

	r.piano = inst
	r.index = i
	r.logger.Printf("rig: instrument %s", inst.Name())

	if m, ok := r.ctrl.Mode(); ok && m == inst.Mode() {
		return r.ctrl.Reset()
	}
	return r.ctrl.Enter(inst.Mode())
}

func (r *Rig) build(name string) (Instrument, error) {
	if name == bank.SynthSet {
		return NewSynthesizer(r.ctrl.Device(), r.volumes, r.logger), nil
	}
	samples, err := r.library.Load(name)
	if err != nil {
		return nil, err
	}
	return NewPiano(name, samples, r.ctrl.Device(), r.logger), nil
}

// reload uploads every instrument's sounds after a mixer transition
func (r *Rig) reload(m mixer.Mode) error {
	format := m.Config().Format()
	if r.drums != nil {
		if err := r.drums.LoadVoices(format); err != nil {
			return err
		}
	}
	if r.piano != nil {
		if err := r.piano.LoadVoices(format); err != nil {
			return err
		}
	}
	return nil
}

// Note routes a piano key
func (r *Rig) Note(ch int, pressed bool) {
	if r.piano == nil {
		return
	}
	if pressed {
		r.piano.NoteOn(ch)
	} else {
		r.piano.NoteOff(ch)
	}
}

// Pad routes a drum pad
func (r *Rig) Pad(ch int, pressed bool) {
	if r.drums == nil {
		return
	}
	if pressed {
		r.drums.NoteOn(ch)
	} else {
		r.drums.NoteOff(ch)
	}
}

// OctaveDown forwards to the piano slot if it shifts
func (r *Rig) OctaveDown() {
	if s, ok := r.piano.(Shifter); ok {
		s.ShiftDown()
	}
}

// OctaveUp forwards to the piano slot if it shifts
func (r *Rig) OctaveUp() {
	if s, ok := r.piano.(Shifter); ok {
		s.ShiftUp()
	}
}

// Instrument returns the piano-slot instrument
func (r *Rig) Instrument() Instrument {
	return r.piano
}

// Snapshot captures the state for display
func (r *Rig) Snapshot() Snapshot {
	var s Snapshot
	if m, ok := r.ctrl.Mode(); ok {
		s.Mode = m
	}
	if r.drums != nil {
		s.Drums = r.drums.Name()
	}
	switch p := r.piano.(type) {
	case *Piano:
		s.Instrument = p.Name()
		s.Octave, s.Octaves = p.Octave()
	case *Synthesizer:
		s.Instrument = p.Name()
		s.Waveforms = p.Waveforms().String()
		s.Held = p.Voices().ActiveCount()
	}
	return s
}

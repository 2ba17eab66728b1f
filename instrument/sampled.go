package instrument

import (
	"fmt"
	"log"

	"github.com/lixenwraith/hatband/bank"
	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/mixer"
	"github.com/lixenwraith/hatband/synth"
)

// sampled holds decoded files and the device ids they were last loaded under
type sampled struct {
	name    string
	samples []*bank.Sample
	ids     []core.SoundID
	player  synth.Player
	logger  *log.Logger
}

func newSampled(name string, samples []*bank.Sample, player synth.Player, logger *log.Logger) sampled {
	if logger == nil {
		logger = log.Default()
	}
	return sampled{name: name, samples: samples, player: player, logger: logger}
}

func (s *sampled) Name() string { return s.name }

func (s *sampled) LoadVoices(format core.Format) error {
	s.ids = s.ids[:0]
	for _, smp := range s.samples {
		id, err := s.player.Load(smp.Quantize(format))
		if err != nil {
			s.ids = nil
			return fmt.Errorf("%s: load %s: %w", s.name, smp.Name, err)
		}
		s.ids = append(s.ids, id)
	}
	return nil
}

// trigger plays sound index once, out-of-range indices are ignored
func (s *sampled) trigger(index int) {
	if index < 0 || index >= len(s.ids) {
		return
	}
	if _, err := s.player.Play(s.ids[index], core.PlayOptions{}); err != nil {
		s.logger.Printf("%s: sound %d not started: %v", s.name, index, err)
	}
}

// Piano plays one sampled octave of a chromatic bank at a time
type Piano struct {
	sampled
	octave  int
	octaves int
}

// NewPiano creates a piano over samples ordered low to high, starting mid-range
func NewPiano(name string, samples []*bank.Sample, player synth.Player, logger *log.Logger) *Piano {
	octaves := len(samples) / constant.OctaveSpan
	return &Piano{
		sampled: newSampled(name, samples, player, logger),
		octave:  octaves / 2,
		octaves: octaves,
	}
}

func (p *Piano) Mode() mixer.Mode { return mixer.Normal }

// NoteOn plays key ch of the current octave
func (p *Piano) NoteOn(ch int) {
	if ch < 0 || ch >= constant.PianoKeys {
		return
	}
	p.trigger(ch + constant.OctaveSpan*p.octave)
}

// NoteOff is ignored, samples play to their end
func (p *Piano) NoteOff(int) {}

func (p *Piano) ShiftDown() {
	if p.octave > 0 {
		p.octave--
	}
}

func (p *Piano) ShiftUp() {
	if p.octave < p.octaves-1 {
		p.octave++
	}
}

// Octave returns the current octave and the octave count
func (p *Piano) Octave() (octave, octaves int) {
	return p.octave, p.octaves
}

// Drums plays one sample per pad
type Drums struct {
	sampled
}

// NewDrums creates a drum kit; pad i plays samples[i]
func NewDrums(name string, samples []*bank.Sample, player synth.Player, logger *log.Logger) *Drums {
	return &Drums{sampled: newSampled(name, samples, player, logger)}
}

func (d *Drums) Mode() mixer.Mode { return mixer.Normal }

// NoteOn plays pad ch once
func (d *Drums) NoteOn(ch int) {
	if ch < 0 || ch >= constant.DrumPads {
		return
	}
	d.trigger(ch)
}

// NoteOff is ignored
func (d *Drums) NoteOff(int) {}

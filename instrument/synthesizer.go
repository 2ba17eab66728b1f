package instrument

import (
	"fmt"
	"log"

	"github.com/lixenwraith/hatband/bank"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/mixer"
	"github.com/lixenwraith/hatband/synth"
)

// Synthesizer plays generated waveform loops held for as long as the key is
// The octave buttons step through the legal waveform combinations
type Synthesizer struct {
	volumes  synth.Volumes
	voices   *synth.VoiceMixer
	selector synth.Selector
	bank     *synth.NoteBank
}

// NewSynthesizer creates a synthesizer starting at the first combination
func NewSynthesizer(player synth.Player, volumes synth.Volumes, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		volumes: volumes,
		voices:  synth.NewVoiceMixer(player, logger),
	}
}

func (s *Synthesizer) Name() string { return bank.SynthSet }
func (s *Synthesizer) Mode() mixer.Mode { return mixer.Synth }

// LoadVoices regenerates the note bank when format changed and uploads it
func (s *Synthesizer) LoadVoices(format core.Format) error {
	if s.bank == nil || s.bank.Format() != format {
		nb, err := synth.BuildNoteBank(synth.Generator{Format: format}, s.volumes)
		if err != nil {
			return fmt.Errorf("synthesizer: %w", err)
		}
		s.bank = nb
	}
	return s.voices.Load(s.bank)
}

func (s *Synthesizer) NoteOn(ch int) { s.voices.NoteOn(ch, s.selector.Current()) }
func (s *Synthesizer) NoteOff(ch int) { s.voices.NoteOff(ch) }

func (s *Synthesizer) ShiftDown() { s.selector.Dec() }
func (s *Synthesizer) ShiftUp() { s.selector.Inc() }

// Waveforms returns the enabled set used by the next note
func (s *Synthesizer) Waveforms() synth.EnableSet {
	return s.selector.Current()
}

// Voices exposes the voice mixer for inspection
func (s *Synthesizer) Voices() *synth.VoiceMixer {
	return s.voices
}

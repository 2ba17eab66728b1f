package synth

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/core"
)

// Player is the part of an output device the voice mixer drives
// Every call is fire-and-forget from the control thread
type Player interface {
	Load(buf *core.SampleBuffer) (core.SoundID, error)
	Play(id core.SoundID, opts core.PlayOptions) (core.VoiceID, error)
	FadeOut(v core.VoiceID, d time.Duration)
	Stop(v core.VoiceID)
}

// VoiceState tracks envelope phase of an ActiveVoice
type VoiceState int

const (
	VoiceAttacking VoiceState = iota
	VoiceSustained
	VoiceReleasing
	VoiceDone
)

func (s VoiceState) String() string {
	switch s {
	case VoiceAttacking:
		return "attacking"
	case VoiceSustained:
		return "sustained"
	case VoiceReleasing:
		return "releasing"
	case VoiceDone:
		return "done"
	default:
		return "unknown"
	}
}

// Layer is one waveform loop started for a pitch
type Layer struct {
	Kind  WaveformKind
	Voice core.VoiceID
}

// ActiveVoice is the set of loops sounding for one pitch
type ActiveVoice struct {
	Pitch    int
	Layers   []Layer
	Started  time.Time
	Released time.Time // Zero while the key is held
}

// State derives the envelope phase at now
func (av *ActiveVoice) State(now time.Time, attack, release time.Duration) VoiceState {
	if !av.Released.IsZero() {
		if now.Sub(av.Released) >= release {
			return VoiceDone
		}
		return VoiceReleasing
	}
	if now.Sub(av.Started) < attack {
		return VoiceAttacking
	}
	return VoiceSustained
}

// VoiceMixer turns note events into looping, fading device voices
// Not safe for concurrent use; owned by the control thread
type VoiceMixer struct {
	player Player
	logger *log.Logger

	Attack  time.Duration
	Release time.Duration

	sounds [kindCount][PitchCount]core.SoundID
	loaded bool
	active map[int]*ActiveVoice
	now    func() time.Time
}

// NewVoiceMixer creates a mixer with the stock envelope
// A nil logger uses log.Default()
func NewVoiceMixer(player Player, logger *log.Logger) *VoiceMixer {
	if logger == nil {
		logger = log.Default()
	}
	return &VoiceMixer{
		player:  player,
		logger:  logger,
		Attack:  constant.SynthAttack,
		Release: constant.SynthRelease,
		active:  make(map[int]*ActiveVoice),
		now:     time.Now,
	}
}

// SetClock replaces the time source used for envelope bookkeeping
func (vm *VoiceMixer) SetClock(now func() time.Time) {
	vm.now = now
}

// Load registers every bank buffer with the player
// Previously tracked voices are forgotten; the device is expected to have been reset
func (vm *VoiceMixer) Load(bank *NoteBank) error {
	vm.loaded = false
	clear(vm.active)

	for _, kind := range Kinds {
		for p := range PitchCount {
			id, err := vm.player.Load(bank.Buffer(kind, p))
			if err != nil {
				return fmt.Errorf("load %s/%d: %w", kind, p, err)
			}
			vm.sounds[kind][p] = id
		}
	}

	vm.loaded = true
	return nil
}

// NoteOn starts a looping voice for every kind enabled in set
// A voice already sounding at pitch is cut and replaced
func (vm *VoiceMixer) NoteOn(pitch int, set EnableSet) {
	if !vm.loaded || !validPitch(pitch) {
		return
	}
	now := vm.now()
	vm.prune(now)

	if old, ok := vm.active[pitch]; ok {
		for _, l := range old.Layers {
			vm.player.Stop(l.Voice)
		}
		delete(vm.active, pitch)
	}

	av := &ActiveVoice{Pitch: pitch, Started: now}
	opts := core.PlayOptions{Loop: true, FadeIn: vm.Attack}
	for _, kind := range set.Kinds() {
		v, err := vm.player.Play(vm.sounds[kind][pitch], opts)
		if err != nil {
			vm.logger.Printf("synth: note %d %s not started: %v", pitch, kind, err)
			continue
		}
		av.Layers = append(av.Layers, Layer{Kind: kind, Voice: v})
	}

	if len(av.Layers) > 0 {
		vm.active[pitch] = av
	}
}

// NoteOff fades every layer started for pitch, whatever the current enable set
func (vm *VoiceMixer) NoteOff(pitch int) {
	if !vm.loaded || !validPitch(pitch) {
		return
	}
	now := vm.now()
	vm.prune(now)

	av, ok := vm.active[pitch]
	if !ok || !av.Released.IsZero() {
		return
	}

	for _, l := range av.Layers {
		vm.player.FadeOut(l.Voice, vm.Release)
	}
	av.Released = now
}

// Voice returns the tracked voice for pitch
func (vm *VoiceMixer) Voice(pitch int) (*ActiveVoice, bool) {
	av, ok := vm.active[pitch]
	return av, ok
}

// State returns the envelope phase of pitch, VoiceDone when nothing sounds
func (vm *VoiceMixer) State(pitch int) VoiceState {
	av, ok := vm.active[pitch]
	if !ok {
		return VoiceDone
	}
	return av.State(vm.now(), vm.Attack, vm.Release)
}

// ActiveCount returns the number of pitches not yet fully released
func (vm *VoiceMixer) ActiveCount() int {
	vm.prune(vm.now())
	return len(vm.active)
}

// prune drops voices whose release has completed
func (vm *VoiceMixer) prune(now time.Time) {
	for p, av := range vm.active {
		if av.State(now, vm.Attack, vm.Release) == VoiceDone {
			delete(vm.active, p)
		}
	}
}

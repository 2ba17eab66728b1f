// Package instrument maps pad and key channels onto device voices
package instrument

import (
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/mixer"
)

// Instrument is a playable sound source bound to one mixer mode
type Instrument interface {
	// Name returns the sound-set name the instrument was built from
	Name() string
	// Mode returns the mixer mode the instrument needs
	Mode() mixer.Mode
	// LoadVoices uploads the instrument's sounds in format
	// Called after every mixer transition since transitions discard loaded sounds
	LoadVoices(format core.Format) error
	NoteOn(ch int)
	NoteOff(ch int)
}

// Shifter is implemented by instruments that react to the octave buttons
type Shifter interface {
	ShiftDown()
	ShiftUp()
}

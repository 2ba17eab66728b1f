package events

import (
	"time"
)

// EventType represents the type of rig event
type EventType int

const (
	// EventNote is a piano key press or release
	// Producer: Keyboard | Channel: key 0..12
	EventNote EventType = iota

	// EventPad is a drum pad hit or release
	// Producer: Keyboard | Channel: pad 0..7
	EventPad

	// EventOctaveDown shifts the piano slot down, or steps synth waveforms back
	// Producer: Keyboard | Press only
	EventOctaveDown

	// EventOctaveUp shifts the piano slot up, or steps synth waveforms forward
	// Producer: Keyboard | Press only
	EventOctaveUp

	// EventInstrument cycles the piano slot to the next sound set
	// Triggers a mixer transition | Press only
	EventInstrument

	// EventQuit ends the control loop
	// Producer: Keyboard (Esc, Ctrl+C), signal handler
	EventQuit
)

func (t EventType) String() string {
	switch t {
	case EventNote:
		return "note"
	case EventPad:
		return "pad"
	case EventOctaveDown:
		return "octave-down"
	case EventOctaveUp:
		return "octave-up"
	case EventInstrument:
		return "instrument"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is a single input edge
type Event struct {
	Type      EventType
	Channel   int  // Key or pad index, 0 for buttons
	Pressed   bool // False on release
	Timestamp time.Time
}

// Press creates a pressed event stamped now
func Press(t EventType, ch int) Event {
	return Event{Type: t, Channel: ch, Pressed: true, Timestamp: time.Now()}
}

// Release creates a released event stamped now
func Release(t EventType, ch int) Event {
	return Event{Type: t, Channel: ch, Pressed: false, Timestamp: time.Now()}
}

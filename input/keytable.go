package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hatband/events"
)

// KeyBehavior classifies how a key edge is produced
type KeyBehavior uint8

const (
	BehaviorNone KeyBehavior = iota
	// BehaviorHold presses on the first key event and releases after the hold timeout
	BehaviorHold
	// BehaviorButton pushes press and release together, consumers act on press
	BehaviorButton
	// BehaviorSystem pushes a press only
	BehaviorSystem
)

// KeyEntry describes the event a key produces
type KeyEntry struct {
	Behavior KeyBehavior
	Type     events.EventType
	Channel  int
}

// KeyTable maps keys to rig events
type KeyTable struct {
	// Special keys (Tab, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable key bindings, lower case
	Runes map[rune]KeyEntry
}

// pianoRow lays one octave on the home row, black keys on the row above
const pianoRow = "awsedftgyhujk"

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyTab:    {BehaviorButton, events.EventInstrument, 0},
			tcell.KeyEscape: {BehaviorSystem, events.EventQuit, 0},
			tcell.KeyCtrlC:  {BehaviorSystem, events.EventQuit, 0},
		},
		Runes: map[rune]KeyEntry{
			'z': {BehaviorButton, events.EventOctaveDown, 0},
			'x': {BehaviorButton, events.EventOctaveUp, 0},
		},
	}

	for i, r := range pianoRow {
		kt.Runes[r] = KeyEntry{BehaviorHold, events.EventNote, i}
	}
	for i := range 8 {
		kt.Runes['1'+rune(i)] = KeyEntry{BehaviorHold, events.EventPad, i}
	}
	return kt
}

// Lookup resolves a key; rune keys match case-insensitively
func (kt *KeyTable) Lookup(key tcell.Key, r rune) (KeyEntry, bool) {
	if key != tcell.KeyRune {
		e, ok := kt.SpecialKeys[key]
		return e, ok
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	e, ok := kt.Runes[r]
	return e, ok
}

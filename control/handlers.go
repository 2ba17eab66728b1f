package control

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/hatband/events"
	"github.com/lixenwraith/hatband/status"
)

// keyHandler routes piano keys and drum pads, both edges
type keyHandler struct{}

func (keyHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventNote, events.EventPad}
}

func (keyHandler) HandleEvent(rig Rig, ev events.Event) error {
	if ev.Type == events.EventPad {
		rig.Pad(ev.Channel, ev.Pressed)
	} else {
		rig.Note(ev.Channel, ev.Pressed)
	}
	return nil
}

// shiftHandler routes the octave buttons on press
type shiftHandler struct{}

func (shiftHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventOctaveDown, events.EventOctaveUp}
}

func (shiftHandler) HandleEvent(rig Rig, ev events.Event) error {
	if !ev.Pressed {
		return nil
	}
	if ev.Type == events.EventOctaveDown {
		rig.OctaveDown()
	} else {
		rig.OctaveUp()
	}
	return nil
}

// switchHandler cycles instruments on press; a failed switch ends the loop
// A press stamped while the previous switch was running is dropped: the player
// pressed again before hearing the result
type switchHandler struct {
	reg    *status.Registry
	now    func() time.Time
	logger *log.Logger

	started, finished time.Time // Last switch
}

func (*switchHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventInstrument}
}

func (h *switchHandler) HandleEvent(rig Rig, ev events.Event) error {
	if !ev.Pressed {
		return nil
	}
	if h.during(ev.Timestamp) {
		h.reg.AddSwitchDropped()
		return nil
	}

	h.started = h.now()
	err := rig.NextInstrument()
	h.finished = h.now()
	if err != nil {
		return fmt.Errorf("instrument switch: %w", err)
	}
	h.reg.AddSwitch()
	h.logger.Printf("control: switched to %s in %v", rig.Snapshot().Instrument, h.finished.Sub(h.started))
	return nil
}

// during reports whether ts falls inside the last switch
func (h *switchHandler) during(ts time.Time) bool {
	return !ts.Before(h.started) && ts.Before(h.finished)
}

type quitHandler struct{}

func (quitHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventQuit}
}

func (quitHandler) HandleEvent(Rig, events.Event) error {
	return errQuit
}

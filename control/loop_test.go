package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/hatband/events"
	"github.com/lixenwraith/hatband/instrument"
	"github.com/lixenwraith/hatband/mixer"
	"github.com/lixenwraith/hatband/status"
)

// fakeRig records routed calls
type fakeRig struct {
	calls     []string
	switchErr error
	snap      instrument.Snapshot
	onSwitch  func()
}

func (r *fakeRig) Note(ch int, pressed bool) { r.calls = append(r.calls, fmt.Sprintf("note %d %v", ch, pressed)) }
func (r *fakeRig) Pad(ch int, pressed bool) { r.calls = append(r.calls, fmt.Sprintf("pad %d %v", ch, pressed)) }
func (r *fakeRig) OctaveDown() { r.calls = append(r.calls, "down") }
func (r *fakeRig) OctaveUp() { r.calls = append(r.calls, "up") }

func (r *fakeRig) NextInstrument() error {
	r.calls = append(r.calls, "switch")
	if r.onSwitch != nil {
		r.onSwitch()
	}
	return r.switchErr
}

func (r *fakeRig) Snapshot() instrument.Snapshot { return r.snap }

type fakeDevice struct{}

func (fakeDevice) Active() int { return 3 }
func (fakeDevice) Stats() (played, dropped uint64) { return 10, 2 }

func newTestLoop() (*Loop, *fakeRig, *events.Queue, *status.Registry) {
	q := events.NewQueue()
	rig := &fakeRig{snap: instrument.Snapshot{Instrument: "piano", Drums: "drums2", Mode: mixer.Normal, Octave: 1, Octaves: 3}}
	reg := status.NewRegistry()
	return NewLoop(q, rig, reg, log.New(io.Discard, "", 0)), rig, q, reg
}

func TestProcessRoutesInOrder(t *testing.T) {
	l, rig, _, _ := newTestLoop()

	batch := []events.Event{
		events.Press(events.EventNote, 3),
		events.Press(events.EventPad, 1),
		events.Press(events.EventOctaveUp, 0),
		events.Release(events.EventOctaveUp, 0),
		events.Release(events.EventNote, 3),
		events.Press(events.EventOctaveDown, 0),
		events.Release(events.EventPad, 1),
	}
	if err := l.Process(batch); err != nil {
		t.Fatal(err)
	}

	want := []string{"note 3 true", "pad 1 true", "up", "note 3 false", "down", "pad 1 false"}
	if diff := cmp.Diff(want, rig.calls); diff != "" {
		t.Errorf("Routing mismatch (-want +got):\n%s", diff)
	}
}

// TestProcessSwitchWindow verifies presses made during a switch are dropped
// while presses queued before it still switch
func TestProcessSwitchWindow(t *testing.T) {
	l, rig, _, reg := newTestLoop()

	base := time.Unix(1000, 0)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }
	clock := at(10)
	l.now = func() time.Time { return clock }
	rig.onSwitch = func() { clock = clock.Add(100 * time.Millisecond) }

	press := func(ms int) events.Event {
		ev := events.Press(events.EventInstrument, 0)
		ev.Timestamp = at(ms)
		return ev
	}
	note := events.Press(events.EventNote, 0)
	note.Timestamp = at(2)

	// Both presses happened before the first switch started at 10ms
	if err := l.Process([]events.Event{press(0), press(1), note}); err != nil {
		t.Fatal(err)
	}
	want := []string{"switch", "switch", "note 0 true"}
	if diff := cmp.Diff(want, rig.calls); diff != "" {
		t.Errorf("Queued presses mismatch (-want +got):\n%s", diff)
	}

	// The second switch ran from 110ms to 210ms
	rig.calls = nil
	if err := l.Process([]events.Event{press(150), press(209), press(210)}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"switch"}, rig.calls); diff != "" {
		t.Errorf("Mid-switch presses mismatch (-want +got):\n%s", diff)
	}

	c := reg.Snapshot().Counters
	if c.Switches != 3 || c.SwitchDropped != 2 {
		t.Errorf("Expected 3 switches and 2 dropped, got %d and %d", c.Switches, c.SwitchDropped)
	}
}

func TestProcessSwitchIgnoresRelease(t *testing.T) {
	l, rig, _, reg := newTestLoop()
	l.Process([]events.Event{events.Release(events.EventInstrument, 0)})

	if len(rig.calls) != 0 || reg.Snapshot().Counters.Switches != 0 {
		t.Errorf("Expected release to be ignored, got %v", rig.calls)
	}
}

func TestProcessPublishesStatus(t *testing.T) {
	l, rig, _, reg := newTestLoop()
	l.SetDevice(fakeDevice{})

	updates := 0
	l.OnUpdate(func() { updates++ })

	rig.snap = instrument.Snapshot{Instrument: "8bit", Drums: "drums2", Mode: mixer.Synth, Waveforms: "sine", Held: 2}
	l.Process([]events.Event{events.Press(events.EventNote, 0)})

	if updates != 1 {
		t.Errorf("Expected one update, got %d", updates)
	}
	snap := reg.Snapshot()
	wantRig := status.RigState{Instrument: "8bit", Drums: "drums2", Mode: "synth", Waveforms: "sine", Held: 2}
	if diff := cmp.Diff(wantRig, snap.Rig); diff != "" {
		t.Errorf("Rig state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(status.DeviceState{Active: 3, Played: 10, Refused: 2}, snap.Device); diff != "" {
		t.Errorf("Device state mismatch (-want +got):\n%s", diff)
	}
	if snap.Counters.Events != 1 {
		t.Errorf("Expected 1 event counted, got %d", snap.Counters.Events)
	}
}

func TestRunQuit(t *testing.T) {
	l, rig, q, reg := newTestLoop()

	q.Push(events.Press(events.EventNote, 0))
	q.Push(events.Press(events.EventQuit, 0))
	q.Push(events.Press(events.EventNote, 1))

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	if diff := cmp.Diff([]string{"note 0 true"}, rig.calls); diff != "" {
		t.Errorf("Expected events after Quit unprocessed (-want +got):\n%s", diff)
	}
	if got := reg.Rig().Instrument; got != "piano" {
		t.Errorf("Expected initial publish, got %q", got)
	}
}

func TestRunContextCancel(t *testing.T) {
	l, _, _, _ := newTestLoop()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunDeviceLost(t *testing.T) {
	l, rig, q, _ := newTestLoop()
	rig.switchErr = fmt.Errorf("%w: unplugged", mixer.ErrDeviceLost)

	q.Push(events.Press(events.EventInstrument, 0))
	q.Push(events.Press(events.EventNote, 0))

	err := l.Run(context.Background())
	if !errors.Is(err, mixer.ErrDeviceLost) {
		t.Errorf("Expected ErrDeviceLost, got %v", err)
	}
	if diff := cmp.Diff([]string{"switch"}, rig.calls); diff != "" {
		t.Errorf("Expected processing to stop at the failed switch (-want +got):\n%s", diff)
	}
}

package input

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/hatband/events"
)

func TestReadScript(t *testing.T) {
	q := events.NewQueue()
	k := NewKeyboard(DefaultKeyTable(), q, time.Millisecond)

	if err := k.ReadScript(strings.NewReader("a 1\n\tz\n")); err != nil {
		t.Fatal(err)
	}

	var got []edge
	for _, e := range edges(q.Poll()) {
		// Hold expiry may land before or after the second line
		if (e.Type == events.EventNote || e.Type == events.EventPad) && !e.Pressed {
			continue
		}
		got = append(got, e)
	}

	want := []edge{
		{events.EventNote, 0, true},
		{events.EventPad, 0, true},
		{events.EventInstrument, 0, true},
		{events.EventInstrument, 0, false},
		{events.EventOctaveDown, 0, true},
		{events.EventOctaveDown, 0, false},
		{events.EventQuit, 0, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Script edges mismatch (-want +got):\n%s", diff)
	}
	if k.Held() != 0 {
		t.Errorf("Expected all keys released, %d held", k.Held())
	}
}

// Package control runs the single consumer that owns the rig
package control

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lixenwraith/hatband/events"
	"github.com/lixenwraith/hatband/instrument"
	"github.com/lixenwraith/hatband/status"
)

// errQuit ends Run without an error
var errQuit = errors.New("quit")

// Rig is the instrument surface driven by events
type Rig interface {
	Note(ch int, pressed bool)
	Pad(ch int, pressed bool)
	OctaveDown()
	OctaveUp()
	NextInstrument() error
	Snapshot() instrument.Snapshot
}

// DeviceStats is implemented by output devices that count voices
type DeviceStats interface {
	Active() int
	Stats() (played, dropped uint64)
}

// Loop drains the event queue and applies events to the rig in order
// Every rig call happens on the Run goroutine
type Loop struct {
	queue  *events.Queue
	rig    Rig
	router *events.Router[Rig]
	device DeviceStats
	reg    *status.Registry
	logger *log.Logger
	now    func() time.Time

	onUpdate func()
}

// NewLoop creates a loop over queue; nil logger falls back to the default logger
func NewLoop(queue *events.Queue, rig Rig, reg *status.Registry, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}

	l := &Loop{
		queue:  queue,
		rig:    rig,
		router: events.NewRouter[Rig](),
		reg:    reg,
		logger: logger,
		now:    time.Now,
	}

	l.router.Register(keyHandler{})
	l.router.Register(shiftHandler{})
	l.router.Register(&switchHandler{reg: reg, now: l.clock, logger: logger})
	l.router.Register(quitHandler{})
	return l
}

func (l *Loop) clock() time.Time { return l.now() }

// SetDevice adds voice counters to the published status
func (l *Loop) SetDevice(d DeviceStats) {
	l.device = d
}

// OnUpdate registers fn to run after each batch is published
// Called on the Run goroutine
func (l *Loop) OnUpdate(fn func()) {
	l.onUpdate = fn
}

// Run consumes events until Quit, ctx cancellation, or a rig error
func (l *Loop) Run(ctx context.Context) error {
	l.publish()

	for {
		batch, err := l.queue.Drain(ctx)
		if err != nil {
			return nil
		}

		err = l.Process(batch)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Process applies one drained batch, then publishes status
func (l *Loop) Process(batch []events.Event) error {
	l.reg.AddEvents(len(batch))

	err := l.router.Dispatch(l.rig, batch)

	if n := len(batch); n > 0 && !batch[n-1].Timestamp.IsZero() {
		l.reg.SetLatency(l.now().Sub(batch[n-1].Timestamp))
	}
	l.publish()
	return err
}

// publish mirrors rig and device state into the registry
func (l *Loop) publish() {
	snap := l.rig.Snapshot()
	l.reg.PublishRig(status.RigState{
		Instrument: snap.Instrument,
		Drums:      snap.Drums,
		Mode:       snap.Mode.String(),
		Waveforms:  snap.Waveforms,
		Octave:     snap.Octave,
		Octaves:    snap.Octaves,
		Held:       snap.Held,
	})
	l.reg.SetQueueDropped(l.queue.Dropped())

	if l.device != nil {
		played, refused := l.device.Stats()
		l.reg.PublishDevice(status.DeviceState{
			Active:  l.device.Active(),
			Played:  played,
			Refused: refused,
		})
	}

	if l.onUpdate != nil {
		l.onUpdate()
	}
}

// Package status carries rig state from the control loop to the display
package status

import (
	"sync/atomic"
	"time"
)

// Registry is written by the control loop and read by the display
// Rig and device state are swapped whole so a reader never sees half a publish
// Zero value is ready to use
type Registry struct {
	rig    atomic.Pointer[RigState]
	device atomic.Pointer[DeviceState]

	events        atomic.Int64
	switches      atomic.Int64
	switchDropped atomic.Int64
	queueDropped  atomic.Int64
	latency       atomic.Int64 // Nanoseconds

	deviceLost atomic.Bool

	version atomic.Uint64
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// PublishRig replaces the instrument view
func (r *Registry) PublishRig(s RigState) {
	r.rig.Store(&s)
	r.version.Add(1)
}

// PublishDevice replaces the voice counters
func (r *Registry) PublishDevice(d DeviceState) {
	r.device.Store(&d)
	r.version.Add(1)
}

// Rig returns the last published instrument view
func (r *Registry) Rig() RigState {
	if p := r.rig.Load(); p != nil {
		return *p
	}
	return RigState{}
}

// AddEvents counts n handled events
func (r *Registry) AddEvents(n int) {
	r.events.Add(int64(n))
}

// AddSwitch counts one completed instrument switch
func (r *Registry) AddSwitch() {
	r.switches.Add(1)
}

// AddSwitchDropped counts one instrument press ignored during a switch
func (r *Registry) AddSwitchDropped() {
	r.switchDropped.Add(1)
}

// SetQueueDropped records the queue's overwrite total
func (r *Registry) SetQueueDropped(n uint64) {
	r.queueDropped.Store(int64(n))
}

// SetLatency records push-to-handled time of the last batch
func (r *Registry) SetLatency(d time.Duration) {
	r.latency.Store(int64(d))
}

// MarkDeviceLost flags a failed mixer reopen; never cleared
func (r *Registry) MarkDeviceLost() {
	r.deviceLost.Store(true)
	r.version.Add(1)
}

// Version increases on every publish; readers compare it to skip redraws
func (r *Registry) Version() uint64 {
	return r.version.Load()
}

// Snapshot reads everything the display shows
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Rig: r.Rig(),
		Counters: Counters{
			Events:        r.events.Load(),
			Switches:      r.switches.Load(),
			SwitchDropped: r.switchDropped.Load(),
			QueueDropped:  r.queueDropped.Load(),
			Latency:       time.Duration(r.latency.Load()),
		},
		DeviceLost: r.deviceLost.Load(),
	}
	if p := r.device.Load(); p != nil {
		s.Device = *p
	}
	return s
}

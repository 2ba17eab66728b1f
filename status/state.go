package status

import "time"

// RigState is the instrument view published after every control batch
type RigState struct {
	Instrument string
	Drums      string
	Mode       string
	Waveforms  string // Synthesizer only
	Octave     int    // Piano only, 0-based
	Octaves    int    // Piano only
	Held       int    // Synthesizer only, pitches still sounding
}

// Synth reports whether the piano slot holds the synthesizer
func (s RigState) Synth() bool {
	return s.Waveforms != ""
}

// DeviceState mirrors the output device voice counters
type DeviceState struct {
	Active  int
	Played  uint64
	Refused uint64
}

// Counters are the control loop totals since start
type Counters struct {
	Events        int64
	Switches      int64
	SwitchDropped int64 // Instrument presses received while a switch was running
	QueueDropped  int64 // Events overwritten before the loop read them
	Latency       time.Duration
}

// Snapshot is one read of the registry for display
// Rig and Device are each internally consistent; counters may lead them by one batch
type Snapshot struct {
	Rig        RigState
	Device     DeviceState
	Counters   Counters
	DeviceLost bool
}

package constant

import "time"

// Control Loop
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255

	// StatusRefreshInterval is the status panel redraw cadence
	StatusRefreshInterval = 100 * time.Millisecond
)

// Keyboard Emulation
const (
	// KeyHoldTimeout is how long a key counts as held after its last press or repeat
	// Terminals deliver no release events, so releases are synthesized
	KeyHoldTimeout = 350 * time.Millisecond
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "hatband.log"
)

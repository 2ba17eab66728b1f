package constant

import "time"

// Mixer Settings
// Normal mode plays 16-bit sample banks, synth mode plays generated 8-bit loops
const (
	NormalSampleRate   = 44100
	NormalBitDepth     = 16
	NormalChannels     = 1
	NormalBufferFrames = 512

	SynthSampleRate   = 44100
	SynthBitDepth     = 8
	SynthChannels     = 4
	SynthBufferFrames = 256

	// VoiceLimit is the number of concurrent playback slots after any mixer (re)init
	VoiceLimit = 32
)

// Synthesizer Envelope
const (
	SynthAttack  = 25 * time.Millisecond
	SynthRelease = 500 * time.Millisecond
)

// Default per-waveform attenuation, balances the louder square and saw against sine
const (
	SineVolume   = 0.8
	SquareVolume = 0.4
	SawVolume    = 0.4
)

// Pad Layout
const (
	// PianoKeys is the key count of one octave C to C inclusive
	PianoKeys = 13

	// OctaveSpan is the sample index stride between octaves of a piano bank
	OctaveSpan = 12

	// DrumPads is the pad count of the drum device
	DrumPads = 8
)

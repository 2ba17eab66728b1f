package synth

// PitchClasses are the equal-tempered frequencies of one octave, C4 to C5 inclusive
var PitchClasses = [...]float64{
	261.626, // C4
	277.183,
	293.665,
	311.127,
	329.628,
	349.228,
	369.994,
	391.995,
	415.305,
	440.000, // A4
	466.164,
	493.883,
	523.251, // C5
}

// PitchCount is the number of playable synthesizer pitches
const PitchCount = len(PitchClasses)

// validPitch reports whether p indexes PitchClasses
func validPitch(p int) bool {
	return p >= 0 && p < PitchCount
}

package synth

import "strings"

// EnableSet selects which waveforms sound on note-on
type EnableSet struct {
	Sine   bool
	Square bool
	Saw    bool
}

// Enabled reports whether kind is part of the set
func (s EnableSet) Enabled(kind WaveformKind) bool {
	switch kind {
	case Sine:
		return s.Sine
	case Square:
		return s.Square
	case Sawtooth:
		return s.Saw
	}
	return false
}

// Kinds returns the enabled waveforms in Sine, Square, Saw order
func (s EnableSet) Kinds() []WaveformKind {
	kinds := make([]WaveformKind, 0, len(Kinds))
	for _, k := range Kinds {
		if s.Enabled(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s EnableSet) String() string {
	kinds := s.Kinds()
	if len(kinds) == 0 {
		return "silent"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, "+")
}

// legal excludes silence and saw-only
func (s EnableSet) legal() bool {
	return s.Sine || s.Square
}

// Combinations is the ordered index space of legal enable sets
type Combinations []EnableSet

var legalCombinations = enumerate()

// enumerate walks (sine, square, saw) lexicographically with true before false
func enumerate() Combinations {
	order := [...]bool{true, false}
	combos := make(Combinations, 0, 6)
	for _, sine := range order {
		for _, square := range order {
			for _, saw := range order {
				s := EnableSet{Sine: sine, Square: square, Saw: saw}
				if s.legal() {
					combos = append(combos, s)
				}
			}
		}
	}
	return combos
}

// LegalCombinations returns a copy of the legal enable sets in index order
func LegalCombinations() Combinations {
	out := make(Combinations, len(legalCombinations))
	copy(out, legalCombinations)
	return out
}

// Count returns the number of legal sets
func (c Combinations) Count() int {
	return len(c)
}

// At returns the set at index, ok is false when index is out of range
func (c Combinations) At(index int) (EnableSet, bool) {
	if index < 0 || index >= len(c) {
		return EnableSet{}, false
	}
	return c[index], true
}

// Selector is a clamped cursor into the legal combinations
// The zero value selects index 0, all three waveforms
type Selector struct {
	index int
}

// Index returns the current position, always in [0, Count)
func (s *Selector) Index() int {
	return s.index
}

// Current returns the selected enable set
func (s *Selector) Current() EnableSet {
	return legalCombinations[s.index]
}

// Inc moves to the next set; no-op at the last index
func (s *Selector) Inc() bool {
	if s.index >= legalCombinations.Count()-1 {
		return false
	}
	s.index++
	return true
}

// Dec moves to the previous set; no-op at index 0
func (s *Selector) Dec() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// SetIndex jumps to index, clamped to the legal range
func (s *Selector) SetIndex(index int) {
	s.index = max(0, min(index, legalCombinations.Count()-1))
}

package bank

import (
	"path/filepath"
)

// Library resolves sound-set names under a base directory
type Library struct {
	Dir string
}

// Sets lists the available sound sets, SynthSet last
func (l Library) Sets() ([]string, error) {
	return SoundSets(l.Dir)
}

// Load decodes the named sound set
func (l Library) Load(name string) ([]*Sample, error) {
	return Load(filepath.Join(l.Dir, name))
}

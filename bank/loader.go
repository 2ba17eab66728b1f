package bank

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gopxl/beep/wav"
	pkgerrors "github.com/pkg/errors"
)

// SynthSet is the pseudo sound set served by the synthesizer instead of files
const SynthSet = "8bit"

// ErrEmptySoundSet is returned when a sound-set directory holds no .wav files
var ErrEmptySoundSet = errors.New("sound set has no .wav files")

// SoundSets lists the sound-set directories under baseDir, sorted, with SynthSet last
func SoundSets(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list sound sets in %s", baseDir)
	}

	var sets []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") && e.Name() != SynthSet {
			sets = append(sets, e.Name())
		}
	}
	slices.SortFunc(sets, func(a, b string) int {
		switch {
		case NaturalLess(a, b):
			return -1
		case NaturalLess(b, a):
			return 1
		}
		return 0
	})
	return append(sets, SynthSet), nil
}

// Load decodes every .wav file in dir in natural name order
func Load(dir string) ([]*Sample, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "glob %s", dir)
	}
	if len(paths) == 0 {
		return nil, pkgerrors.Wrapf(ErrEmptySoundSet, "load %s", dir)
	}

	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case NaturalLess(filepath.Base(a), filepath.Base(b)):
			return -1
		case NaturalLess(filepath.Base(b), filepath.Base(a)):
			return 1
		}
		return 0
	})

	samples := make([]*Sample, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// LoadFile decodes a single .wav file
func LoadFile(path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "decode %s", path)
	}
	defer stream.Close()

	frames := drain(stream, stream.Len())
	if err := stream.Err(); err != nil {
		return nil, pkgerrors.Wrapf(err, "read %s", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Sample{Name: name, SampleRate: int(format.SampleRate), Frames: frames}, nil
}

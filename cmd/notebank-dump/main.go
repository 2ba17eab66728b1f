// notebank-dump writes every generated synthesizer loop to a .wav file
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/lixenwraith/hatband/config"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/synth"
)

func main() {
	outDir := flag.String("out", "notebank", "output directory")
	bits := flag.Int("bits", 8, "bit depth, 8 or 16")
	rate := flag.Int("rate", 44100, "sample rate")
	length := flag.Duration("length", time.Second, "duration of each file, the loop is repeated to fill it")
	flag.Parse()

	cfg := config.Load()
	format := core.Format{SampleRate: *rate, BitDepth: *bits}

	nb, err := synth.BuildNoteBank(synth.Generator{Format: format}, cfg.Volumes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note bank: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "output directory: %v\n", err)
		os.Exit(1)
	}

	for _, kind := range synth.Kinds {
		for p := range synth.PitchCount {
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%02d.wav", kind, p))
			if err := dump(path, nb.Buffer(kind, p), *length); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				os.Exit(1)
			}
		}
	}
	fmt.Printf("wrote %d files to %s\n", len(synth.Kinds)*synth.PitchCount, *outDir)
}

// dump writes buf to path, see encode
func dump(path string, buf *core.SampleBuffer, length time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, buf, length); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encode writes buf as mono .wav, repeated to fill length, with its static volume applied
func encode(w io.WriteSeeker, buf *core.SampleBuffer, length time.Duration) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(buf.Format.SampleRate),
		NumChannels: 1,
		Precision:   buf.Format.BitDepth / 8,
	}
	total := format.SampleRate.N(length)

	pos := 0
	s := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for n < len(samples) && pos < total {
			l, r := buf.Float(pos % buf.Len())
			samples[n] = [2]float64{l * buf.Volume, r * buf.Volume}
			n++
			pos++
		}
		return n, true
	})

	return wav.Encode(w, s, format)
}

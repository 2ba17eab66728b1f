package config

import (
	"flag"
	"fmt"
	"io"
)

const usage = `hatband turns the keyboard into a piano and drum pad rig playing .wav sound sets,
plus an 8-bit synthesizer reached by cycling instruments with Tab.
-p names the sound set loaded into the piano slot first, -d the drum pad sound set.`

// ParseFlags applies command-line flags over cfg
// Both short and long forms are accepted for the sound sets
func (cfg *Config) ParseFlags(name string, args []string, output io.Writer) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Piano, "p", cfg.Piano, "piano sound set")
	fs.StringVar(&cfg.Piano, "piano", cfg.Piano, "piano sound set")
	fs.StringVar(&cfg.Drums, "d", cfg.Drums, "drums sound set")
	fs.StringVar(&cfg.Drums, "drums", cfg.Drums, "drums sound set")
	fs.StringVar(&cfg.SoundsDir, "sounds", cfg.SoundsDir, "sound set base directory")
	fs.DurationVar(&cfg.Hold, "hold", cfg.Hold, "key release timeout after the last auto-repeat")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "no audio device and no terminal UI")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a debug log to logs/")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s\n\nUsage of %s:\n", usage, name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if cfg.Hold <= 0 {
		return fmt.Errorf("hold must be positive, got %s", cfg.Hold)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hatband/bank"
	"github.com/lixenwraith/hatband/config"
	"github.com/lixenwraith/hatband/constant"
	"github.com/lixenwraith/hatband/control"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/events"
	"github.com/lixenwraith/hatband/input"
	"github.com/lixenwraith/hatband/instrument"
	"github.com/lixenwraith/hatband/mixer"
	"github.com/lixenwraith/hatband/output"
	"github.com/lixenwraith/hatband/render"
	"github.com/lixenwraith/hatband/status"
)

// headlessTick is the pull interval of the headless device
const headlessTick = 10 * time.Millisecond

// audioService owns the output device
type audioService struct {
	headless *output.Headless
	speaker  *output.Speaker
}

func newAudioService(headless bool) *audioService {
	if headless {
		return &audioService{headless: output.NewHeadless()}
	}
	return &audioService{speaker: output.NewSpeaker(nil)}
}

func (s *audioService) Name() string { return "audio" }
func (s *audioService) Dependencies() []string { return nil }
func (s *audioService) Init() error { return nil }

func (s *audioService) Device() output.Device {
	if s.headless != nil {
		return s.headless
	}
	return s.speaker
}

// Run pulls the headless device in real time; the speaker is pulled by the driver
func (s *audioService) Run(ctx context.Context) error {
	if s.headless != nil {
		return s.headless.Run(ctx, headlessTick)
	}
	<-ctx.Done()
	return nil
}

func (s *audioService) Stop() error {
	if s.speaker != nil {
		s.speaker.Terminate()
		return nil
	}
	return s.headless.Close()
}

// rigService starts the instruments and runs the control loop
type rigService struct {
	cfg   *config.Config
	audio *audioService
	queue *events.Queue
	reg   *status.Registry

	rig  *instrument.Rig
	loop *control.Loop
}

func (s *rigService) Name() string { return "rig" }
func (s *rigService) Dependencies() []string { return []string{"audio"} }

func (s *rigService) Init() error {
	dev := s.audio.Device()
	ctrl := mixer.NewController(dev, nil)
	s.rig = instrument.NewRig(ctrl, bank.Library{Dir: s.cfg.SoundsDir}, s.cfg.Volumes, nil)
	if err := s.rig.Start(s.cfg.Piano, s.cfg.Drums); err != nil {
		return err
	}
	log.Printf("rig started: piano=%s drums=%s sounds=%s", s.cfg.Piano, s.cfg.Drums, s.cfg.SoundsDir)

	s.loop = control.NewLoop(s.queue, s.rig, s.reg, nil)
	if ds, ok := dev.(control.DeviceStats); ok {
		s.loop.SetDevice(ds)
	}
	return nil
}

// Run returns when the player quits; a lost device is flagged for the display
func (s *rigService) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)
	if errors.Is(err, mixer.ErrDeviceLost) {
		s.reg.MarkDeviceLost()
	}
	return err
}

func (s *rigService) Stop() error { return nil }

// terminalService owns the tcell screen and redraws the status panel
type terminalService struct {
	reg *status.Registry
	rig *rigService

	screen tcell.Screen
	panel  *render.StatusPanel
	dirty  chan struct{}
	fini   sync.Once
}

func (s *terminalService) Name() string { return "terminal" }
func (s *terminalService) Dependencies() []string { return []string{"rig"} }

func (s *terminalService) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashTerminal(screen)

	s.screen = screen
	s.panel = render.NewStatusPanel(screen, s.reg)
	s.dirty = make(chan struct{}, 1)
	s.rig.loop.OnUpdate(func() {
		select {
		case s.dirty <- struct{}{}:
		default:
		}
	})
	return nil
}

// Run redraws on rig updates, and on a fixed cadence when the registry moved without one
// Finalizing the screen on exit unblocks the keyboard poller
func (s *terminalService) Run(ctx context.Context) error {
	ticker := time.NewTicker(constant.StatusRefreshInterval)
	defer ticker.Stop()
	defer s.finish()

	drawn := s.reg.Version()
	s.panel.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.dirty:
		case <-ticker.C:
			if s.reg.Version() == drawn {
				continue
			}
		}
		drawn = s.reg.Version()
		s.panel.Draw()
	}
}

func (s *terminalService) Stop() error {
	s.finish()
	core.SetCrashTerminal(nil)
	return nil
}

func (s *terminalService) finish() {
	s.fini.Do(s.screen.Fini)
}

// keyboardService feeds key events into the queue
type keyboardService struct {
	keyboard *input.Keyboard
	term     *terminalService // Nil in headless mode
	script   io.Reader
}

func (s *keyboardService) Name() string { return "keyboard" }

func (s *keyboardService) Dependencies() []string {
	if s.term != nil {
		return []string{"terminal"}
	}
	return []string{"rig"}
}

func (s *keyboardService) Init() error {
	if s.term != nil {
		s.keyboard.OnResize(s.term.panel.Sync)
	}
	return nil
}

// Run polls the terminal, or plays the script in headless mode
// A finished script waits for its Quit to be handled by the rig
func (s *keyboardService) Run(ctx context.Context) error {
	if s.term != nil {
		s.keyboard.Run(s.term.screen)
		return nil
	}

	done := make(chan error, 1)
	core.Go(func() { done <- s.keyboard.ReadScript(s.script) })

	select {
	case err := <-done:
		if err != nil {
			log.Printf("script: %v", err)
		}
	case <-ctx.Done():
		return nil
	}
	<-ctx.Done()
	return nil
}

func (s *keyboardService) Stop() error {
	s.keyboard.Stop()
	return nil
}

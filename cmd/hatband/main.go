package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/lixenwraith/hatband/config"
	"github.com/lixenwraith/hatband/core"
	"github.com/lixenwraith/hatband/events"
	"github.com/lixenwraith/hatband/input"
	"github.com/lixenwraith/hatband/service"
	"github.com/lixenwraith/hatband/status"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer core.Recover()

	cfg := config.Load()
	if err := cfg.ParseFlags(os.Args[0], os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "hatband: %v\n", err)
		return 2
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if !cfg.Headless && !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Printf("stdin is not a terminal, running headless")
		cfg.Headless = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM, unix.SIGHUP)
	defer stop()

	hub, err := newHub(cfg)
	if err == nil {
		err = hub.Run(ctx)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "hatband: %v\n", err)
		return 1
	}
	return 0
}

// newHub wires the services for cfg
func newHub(cfg *config.Config) (*service.Hub, error) {
	reg := status.NewRegistry()
	queue := events.NewQueue()

	audio := newAudioService(cfg.Headless)
	rig := &rigService{cfg: cfg, audio: audio, queue: queue, reg: reg}
	keyboard := &keyboardService{
		keyboard: input.NewKeyboard(input.DefaultKeyTable(), queue, cfg.Hold),
		script:   os.Stdin,
	}

	services := []service.Service{audio, rig}
	if !cfg.Headless {
		keyboard.term = &terminalService{reg: reg, rig: rig}
		services = append(services, keyboard.term)
	}
	services = append(services, keyboard)

	hub := service.NewHub(nil)
	if err := registerAll(hub, services...); err != nil {
		return nil, err
	}
	return hub, nil
}

// registerAll registers services in order, stopping at the first rejection
func registerAll(hub *service.Hub, services ...service.Service) error {
	for _, svc := range services {
		if err := hub.Register(svc); err != nil {
			return fmt.Errorf("register %s: %w", svc.Name(), err)
		}
	}
	return nil
}

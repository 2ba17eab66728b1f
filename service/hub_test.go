package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// journal records lifecycle calls across services
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	j.calls = append(j.calls, s)
	j.mu.Unlock()
}

type fakeService struct {
	name    string
	deps    []string
	j       *journal
	initErr error
	run     func(ctx context.Context) error
}

func (s *fakeService) Name() string { return s.name }
func (s *fakeService) Dependencies() []string { return s.deps }

func (s *fakeService) Init() error {
	s.j.add("init " + s.name)
	return s.initErr
}

func (s *fakeService) Run(ctx context.Context) error {
	if s.run != nil {
		return s.run(ctx)
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop() error {
	s.j.add("stop " + s.name)
	return nil
}

func quietHub() *Hub {
	return NewHub(log.New(io.Discard, "", 0))
}

// TestHubOrder verifies init in dependency order and stop in reverse
func TestHubOrder(t *testing.T) {
	j := &journal{}
	h := quietHub()
	h.Register(&fakeService{name: "input", deps: []string{"terminal", "rig"}, j: j})
	h.Register(&fakeService{name: "rig", deps: []string{"audio"}, j: j,
		run: func(context.Context) error { return nil }})
	h.Register(&fakeService{name: "terminal", j: j})
	h.Register(&fakeService{name: "audio", j: j})

	if err := h.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"init terminal", "init audio", "init rig", "init input",
		"stop input", "stop rig", "stop audio", "stop terminal",
	}
	if diff := cmp.Diff(want, j.calls); diff != "" {
		t.Errorf("Lifecycle mismatch (-want +got):\n%s", diff)
	}
}

func TestHubInitFailureRollsBack(t *testing.T) {
	j := &journal{}
	boom := errors.New("no device")
	h := quietHub()
	h.Register(&fakeService{name: "audio", j: j})
	h.Register(&fakeService{name: "rig", deps: []string{"audio"}, j: j, initErr: boom})

	err := h.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Expected init error, got %v", err)
	}
	if diff := cmp.Diff([]string{"init audio", "init rig", "stop audio"}, j.calls); diff != "" {
		t.Errorf("Rollback mismatch (-want +got):\n%s", diff)
	}
}

func TestHubRunErrorStopsAll(t *testing.T) {
	j := &journal{}
	lost := errors.New("device lost")
	h := quietHub()
	h.Register(&fakeService{name: "display", j: j})
	h.Register(&fakeService{name: "rig", j: j, run: func(context.Context) error { return lost }})

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, lost) {
			t.Errorf("Expected run error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Hub did not stop after a service failed")
	}
}

func TestHubContextCancel(t *testing.T) {
	h := quietHub()
	h.Register(&fakeService{name: "a", j: &journal{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Hub did not stop on cancel")
	}
}

func TestHubDependencyErrors(t *testing.T) {
	h := quietHub()
	h.Register(&fakeService{name: "a", deps: []string{"missing"}, j: &journal{}})
	if err := h.Run(context.Background()); err == nil {
		t.Error("Expected missing dependency error")
	}

	h = quietHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, j: &journal{}})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, j: &journal{}})
	if err := h.Run(context.Background()); err == nil {
		t.Error("Expected circular dependency error")
	}

	if err := h.Register(&fakeService{name: "a", j: &journal{}}); err == nil {
		t.Error("Expected duplicate registration error")
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

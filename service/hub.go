package service

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Hub is the runtime container for service instances
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // Registration order, keeps the sort deterministic
	logger   *log.Logger
}

// NewHub creates an empty service hub; nil logger falls back to the default logger
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		services: make(map[string]Service),
		logger:   logger,
	}
}

// Register adds a service instance to the hub
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	h.services[name] = svc
	h.order = append(h.order, name)
	return nil
}

// Run initializes every service in dependency order, runs them concurrently
// until the first one returns, then stops them in reverse order
// Returns the first Init or Run error
func (h *Hub) Run(ctx context.Context) error {
	h.mu.Lock()
	sorted, err := h.topologicalSort()
	h.mu.Unlock()
	if err != nil {
		return err
	}

	var initialized []Service
	defer func() {
		for _, svc := range slices.Backward(initialized) {
			if err := svc.Stop(); err != nil {
				h.logger.Printf("service %s stop: %v", svc.Name(), err)
			}
		}
	}()

	for _, name := range sorted {
		svc := h.services[name]
		if err := svc.Init(); err != nil {
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		initialized = append(initialized, svc)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	for _, svc := range initialized {
		g.Go(func() error {
			defer cancel()
			if err := svc.Run(gctx); err != nil {
				return fmt.Errorf("service %s: %w", svc.Name(), err)
			}
			h.logger.Printf("service %s finished", svc.Name())
			return nil
		})
	}

	return g.Wait()
}

// topologicalSort computes initialization order using Kahn's algorithm
// Returns error if a dependency is missing or circular
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string) // dep -> services that depend on it

	for _, name := range h.order {
		for _, dep := range h.services[name].Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for _, name := range h.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("circular dependency detected in services")
	}
	return result, nil
}

// Names returns registered service names in registration order
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.order)
}

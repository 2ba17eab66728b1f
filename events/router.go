package events

// Handler processes specific event types within a context T
type Handler[T any] interface {
	// HandleEvent processes a single event
	// Called synchronously on the consumer goroutine; an error stops dispatch
	HandleEvent(ctx T, event Event) error

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
}

func NewRouter[T any]() *Router[T] {
	return &Router[T]{handlers: make(map[EventType][]Handler[T])}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes events in order, stopping at the first handler error
func (r *Router[T]) Dispatch(ctx T, events []Event) error {
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			if err := h.HandleEvent(ctx, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router[T]) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hatband/events"
)

// Keyboard turns terminal key events into rig events
// Terminals report no key release, so a held key is released once its
// auto-repeat stops for longer than the hold timeout
type Keyboard struct {
	table *KeyTable
	queue *events.Queue
	hold  time.Duration

	mu   sync.Mutex
	held map[KeyEntry]*heldKey

	onResize func()
}

type heldKey struct {
	timer    *time.Timer
	deadline time.Time
}

// NewKeyboard creates a keyboard pushing into queue
func NewKeyboard(table *KeyTable, queue *events.Queue, hold time.Duration) *Keyboard {
	return &Keyboard{
		table: table,
		queue: queue,
		hold:  hold,
		held:  make(map[KeyEntry]*heldKey),
	}
}

// OnResize registers fn to run when the terminal is resized
func (k *Keyboard) OnResize(fn func()) {
	k.onResize = fn
}

// Run polls screen until it is finalized
func (k *Keyboard) Run(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			k.Stop()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			k.Key(ev.Key(), ev.Rune())
		case *tcell.EventResize:
			if k.onResize != nil {
				k.onResize()
			}
		}
	}
}

// Key handles one key event, true when the key is bound
func (k *Keyboard) Key(key tcell.Key, r rune) bool {
	entry, ok := k.table.Lookup(key, r)
	if !ok {
		return false
	}

	switch entry.Behavior {
	case BehaviorHold:
		k.press(entry)
	case BehaviorButton:
		k.queue.Push(events.Press(entry.Type, entry.Channel))
		k.queue.Push(events.Release(entry.Type, entry.Channel))
	case BehaviorSystem:
		k.queue.Push(events.Press(entry.Type, entry.Channel))
	}
	return true
}

// press starts a hold, or extends it on auto-repeat
func (k *Keyboard) press(entry KeyEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if h, ok := k.held[entry]; ok {
		h.deadline = time.Now().Add(k.hold)
		h.timer.Reset(k.hold)
		return
	}

	h := &heldKey{deadline: time.Now().Add(k.hold)}
	h.timer = time.AfterFunc(k.hold, func() { k.expire(entry, h) })
	k.held[entry] = h
	k.queue.Push(events.Press(entry.Type, entry.Channel))
}

// expire releases entry unless it was stopped or repeated meanwhile
// A repeat racing a firing timer re-arms it, so an early call is skipped
func (k *Keyboard) expire(entry KeyEntry, h *heldKey) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if cur, ok := k.held[entry]; !ok || cur != h || time.Now().Before(h.deadline) {
		return
	}
	delete(k.held, entry)
	k.queue.Push(events.Release(entry.Type, entry.Channel))
}

// Held returns the number of keys currently held
func (k *Keyboard) Held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.held)
}

// Stop releases every held key now
func (k *Keyboard) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	for entry, h := range k.held {
		h.timer.Stop()
		delete(k.held, entry)
		k.queue.Push(events.Release(entry.Type, entry.Channel))
	}
}

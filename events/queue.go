package events

import (
	"context"
	"sync/atomic"

	"github.com/lixenwraith/hatband/constant"
)

// slot holds one event and the ticket that wrote it
type slot struct {
	seq atomic.Uint64 // Ticket + 1 once ev is written, 0 = never written
	ev  Event
}

// Queue carries input events from any number of producers to the control loop
// Producers take a ticket and never block; when the ring laps the reader the
// oldest events are lost and counted. Drain is the single consumer.
type Queue struct {
	slots [constant.EventQueueSize]slot
	tail  atomic.Uint64 // Next ticket
	head  uint64        // Next ticket to read, consumer only

	wake    chan struct{} // Capacity 1, one signal may cover many pushes
	dropped atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Push stores ev and wakes the consumer
func (q *Queue) Push(ev Event) {
	ticket := q.tail.Add(1) - 1
	s := &q.slots[ticket&constant.EventBufferMask]
	s.ev = ev
	s.seq.Store(ticket + 1)

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain blocks until events are pending, then returns all of them in push order
// Returns ctx.Err() only when nothing is pending
func (q *Queue) Drain(ctx context.Context) ([]Event, error) {
	for {
		if batch := q.Poll(); batch != nil {
			return batch, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.wake:
		}
	}
}

// Poll returns pending events without blocking, nil when there are none
// Stops at a slot whose producer has not finished writing; that producer's
// wake signal brings the consumer back
func (q *Queue) Poll() []Event {
	tail := q.tail.Load()
	if lost := int64(tail-q.head) - constant.EventQueueSize; lost > 0 {
		q.dropped.Add(uint64(lost))
		q.head += uint64(lost)
	}

	var batch []Event
	for q.head < tail {
		s := &q.slots[q.head&constant.EventBufferMask]
		want := q.head + 1

		seq := s.seq.Load()
		if seq < want {
			break
		}
		ev := s.ev
		if seq > want || s.seq.Load() != seq {
			// Lapped while reading
			q.dropped.Add(1)
			q.head++
			continue
		}
		batch = append(batch, ev)
		q.head++
	}
	return batch
}

// Dropped returns the number of events lost to overflow
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

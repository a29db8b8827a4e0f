package events

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when publishing to or listening on a closed bus
var ErrClosed = errors.New("event bus closed")

// DefaultBuffer is the per-listener channel capacity
const DefaultBuffer = 32

// Bus is an in-process EventPublisher. Each listener has a buffered
// channel; when it is full the event is dropped for that listener.
type Bus struct {
	mu        sync.Mutex
	listeners map[int]chan Event
	nextID    int
	seq       int64
	dropped   int64
	buffer    int
	closed    bool
	done      chan struct{}
	now       func() time.Time
}

// NewBus creates a bus. A buffer of zero or less uses DefaultBuffer.
func NewBus(buffer int, now func() time.Time) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if now == nil {
		now = time.Now
	}
	return &Bus{
		listeners: make(map[int]chan Event),
		buffer:    buffer,
		done:      make(chan struct{}),
		now:       now,
	}
}

// SendEvent stamps the event and fans it out
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	b.seq++
	event.SequenceID = b.seq
	if event.Timestamp.IsZero() {
		event.Timestamp = b.now()
	}

	for _, ch := range b.listeners {
		select {
		case ch <- event:
		default:
			b.dropped++
		}
	}
	return nil
}

// Listen registers a listener. The channel is closed when ctx ends or
// the bus is closed.
func (b *Bus) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.buffer)
	b.listeners[id] = ch

	go func() {
		select {
		case <-ctx.Done():
			b.remove(id)
		case <-b.done:
		}
	}()

	return ch, nil
}

// Dropped is the number of deliveries skipped because a listener was full
func (b *Bus) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close closes every listener channel
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	for id, ch := range b.listeners {
		close(ch)
		delete(b.listeners, id)
	}
	return nil
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.listeners[id]; ok {
		close(ch)
		delete(b.listeners, id)
	}
}

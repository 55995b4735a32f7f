package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultQueueSize = 100

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
	At       time.Time
}

// Sink receives dispatched events. Sinks run on the dispatcher worker, one
// event at a time.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	log   *zap.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	return NewDispatcherSize(defaultQueueSize, log, sinks...)
}

func NewDispatcherSize(size int, log *zap.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sinks: sinks,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			if err := s.Record(context.Background(), ev); err != nil {
				d.log.Warn("audit sink failed",
					zap.String("action", ev.Action),
					zap.Error(err),
				)
			}
		}
	}
}

// Dispatch enqueues ev without blocking. When the queue is full or the
// dispatcher is closed the event is dropped; auditing never fails a request.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queued ones to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

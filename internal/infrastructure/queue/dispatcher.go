package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
	"github.com/kekeqingke/Project-Dashboard/internal/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// Dispatcher delivers session events to a set of sinks off the caller's
// goroutine. Events are sharded by username so that one user's events reach
// every sink in the order they were published.
type Dispatcher struct {
	workers []chan domain.SessionEvent
	sinks   []ports.SessionEventSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, sinks ...ports.SessionEventSink) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SessionEvent, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SessionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// delivers what is already queued and stops.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish queues an event and never blocks. When the worker's buffer is full
// the event is dropped and counted.
func (d *Dispatcher) Publish(_ context.Context, event domain.SessionEvent) error {
	select {
	case d.workers[d.shardIndex(event.Username)] <- event:
	default:
		metrics.SessionEventsDropped.Inc()
		d.log.Warn().
			Str("event", string(event.Type)).
			Str("username", event.Username).
			Msg("session event queue full, dropping event")
	}
	return nil
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SessionEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx), id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.SessionEvent) {
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, event domain.SessionEvent) {
	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			d.log.Error().Err(err).
				Str("event", string(event.Type)).
				Str("username", event.Username).
				Int("worker_id", id).
				Msg("session event delivery failed")
		}
	}
}

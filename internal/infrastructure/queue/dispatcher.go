// Package queue dispatches audit events off the request path. Login and
// token operations enqueue an event and move on; sharded workers deliver
// them to the sink in per-username order.
package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// AuditEvent records one authentication-related outcome. Events carry the
// username and outcome only, never passwords or token material.
type AuditEvent struct {
	Action   string // "login", "validate", "refresh"
	Username string // empty when the token never parsed
	Outcome  string // "success" or an error code
	ClientIP string
	At       time.Time
}

// AuditSink consumes dispatched events.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent)
}

// Dispatcher fans audit events out to a fixed set of workers, sharded by
// username so one account's trail stays ordered.
type Dispatcher struct {
	workers []chan AuditEvent
	sink    AuditSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan AuditEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.workers {
		go d.runWorker(ctx, ch)
	}
}

// Enqueue hands an event to its shard's worker. When the shard's buffer is
// full the event is dropped rather than stalling a login; the drop itself is
// logged.
func (d *Dispatcher) Enqueue(event AuditEvent) {
	select {
	case d.workers[d.shardIndex(event.Username)] <- event:
	default:
		d.log.Warn().
			Str("action", event.Action).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, ch <-chan AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Record(ctx, event)
		}
	}
}

package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type captureSink struct {
	events chan AuditEvent
}

func (s *captureSink) Record(_ context.Context, event AuditEvent) {
	s.events <- event
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{events: make(chan AuditEvent, 16)}
	d := NewDispatcher(2, sink, zerolog.Nop())
	d.Start(ctx)

	sent := AuditEvent{
		Action:   "login",
		Username: "testuser",
		Outcome:  "success",
		ClientIP: "10.0.0.1",
		At:       time.Now().UTC(),
	}
	d.Enqueue(sent)

	select {
	case got := <-sink.events:
		if got.Action != "login" || got.Username != "testuser" || got.Outcome != "success" {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never delivered")
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{events: make(chan AuditEvent, 64)}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		outcome := "success"
		if i%2 == 1 {
			outcome = "invalid_credentials"
		}
		d.Enqueue(AuditEvent{Action: "login", Username: "testuser", Outcome: outcome})
	}

	// Same username shards to the same worker, so arrival order matches
	// enqueue order.
	for i := 0; i < 10; i++ {
		select {
		case got := <-sink.events:
			want := "success"
			if i%2 == 1 {
				want = "invalid_credentials"
			}
			if got.Outcome != want {
				t.Fatalf("event %d out of order: got %q want %q", i, got.Outcome, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d never delivered", i)
		}
	}
}

func TestDispatcher_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	// Workers never started: buffers fill up and further enqueues must
	// return without blocking.
	sink := &captureSink{events: make(chan AuditEvent)}
	d := NewDispatcher(1, sink, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(AuditEvent{Action: "login", Username: "testuser"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full buffer")
	}
}

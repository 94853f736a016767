package queue

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes audit events as structured log lines.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Record satisfies AuditSink.
func (s *LogSink) Record(_ context.Context, event AuditEvent) {
	s.log.Info().
		Str("action", event.Action).
		Str("username", event.Username).
		Str("outcome", event.Outcome).
		Str("client_ip", event.ClientIP).
		Time("at", event.At).
		Msg("audit")
}

package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// LogSink writes session events to the structured log.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, event domain.SessionEvent) error {
	entry := s.log.Info()
	if event.Type == domain.EventUnauthorized || event.Type == domain.EventRehydrateFailed {
		entry = s.log.Warn()
	}
	entry.
		Str("event", string(event.Type)).
		Str("username", event.Username).
		Str("role", string(event.Role)).
		Time("at", event.At).
		Msg("session event")
	return nil
}

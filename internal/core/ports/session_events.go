package ports

import (
	"context"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// SessionEventSink receives session transitions.
type SessionEventSink interface {
	Publish(ctx context.Context, event domain.SessionEvent) error
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
}

// NATSPublisher publishes session events as JSON on "<prefix>.<type>".
type NATSPublisher struct {
	nc     conn
	prefix string
}

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(nc *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// ConnectNATS dials the server at url. The caller closes the connection.
func ConnectNATS(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return nc, nil
}

func (p *NATSPublisher) Publish(_ context.Context, event domain.SessionEvent) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("nats: encode %s event: %w", event.Type, err)
	}
	if err := p.nc.Publish(p.subject(event.Type), data); err != nil {
		return fmt.Errorf("nats: publish %s: %w", p.subject(event.Type), err)
	}
	return nil
}

func (p *NATSPublisher) subject(typ domain.SessionEventType) string {
	if p.prefix == "" {
		return string(typ)
	}
	return p.prefix + "." + string(typ)
}

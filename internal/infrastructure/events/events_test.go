package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

type stubConn struct {
	connected bool
	subject   string
	data      []byte
	err       error
}

func (c *stubConn) Publish(subject string, data []byte) error {
	c.subject, c.data = subject, data
	return c.err
}

func (c *stubConn) IsConnected() bool { return c.connected }

func TestNATSPublisher_Publish(t *testing.T) {
	nc := &stubConn{connected: true}
	p := &NATSPublisher{nc: nc, prefix: "dashboard.session"}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), domain.SessionEvent{
		Type: domain.EventLogin, Username: "admin", Role: domain.RoleAdmin, At: at,
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if nc.subject != "dashboard.session.login" {
		t.Fatalf("unexpected subject: %s", nc.subject)
	}

	var got domain.SessionEvent
	if err := json.Unmarshal(nc.data, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.Username != "admin" || got.Role != domain.RoleAdmin || !got.At.Equal(at) {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestNATSPublisher_Disconnected(t *testing.T) {
	p := &NATSPublisher{nc: &stubConn{}, prefix: "x"}
	err := p.Publish(context.Background(), domain.SessionEvent{Type: domain.EventLogout})
	if !errors.Is(err, nats.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestNATSPublisher_PublishError(t *testing.T) {
	p := &NATSPublisher{nc: &stubConn{connected: true, err: errors.New("slow consumer")}}
	err := p.Publish(context.Background(), domain.SessionEvent{Type: domain.EventLogout})
	if err == nil || !strings.Contains(err.Error(), "publish logout") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogSink_Publish(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	if err := sink.Publish(context.Background(), domain.SessionEvent{Type: domain.EventUnauthorized, Username: "eng"}); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON entry: %v", err)
	}
	if entry["level"] != "warn" || entry["event"] != "unauthorized" || entry["username"] != "eng" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

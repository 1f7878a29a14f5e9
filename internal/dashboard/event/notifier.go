package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

const DefaultSubject = "fraudboard.risk.level"

// LogNotifier only logs the change. It is used when NATS is disabled.
type LogNotifier struct{}

func (LogNotifier) Handle(ctx context.Context, event entity.RiskEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	slog.InfoContext(ctx, "risk level notification", "event_id", event.EventID, "from", event.From, "to", event.To, "alerts", len(event.Alerts))
	return nil
}

type natsConn interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier forwards every risk event as JSON to a NATS subject.
type NATSNotifier struct {
	conn    natsConn
	subject string
}

// DialNATS connects with reconnects enabled and returns the open connection.
func DialNATS(url, name string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
}

func NewNATSNotifier(conn natsConn, subject string) *NATSNotifier {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSNotifier{conn: conn, subject: subject}
}

func (n *NATSNotifier) Handle(ctx context.Context, event entity.RiskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := n.conn.Publish(n.subject, data); err != nil {
		return err
	}

	slog.InfoContext(ctx, "published risk event", "subject", n.subject, "event_id", event.EventID, "to", event.To)
	return nil
}

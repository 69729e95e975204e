package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSDispatcher publishes notifications as JSON messages on NATS subjects.
// A downstream consumer owns actual delivery (email, SMS, push); this side
// only guarantees the message reaches the broker.
type NATSDispatcher struct {
	conn    *nats.Conn
	subject string
}

// NATSConfig holds connection settings for the notification dispatcher.
type NATSConfig struct {
	URL string

	// SubjectPrefix is prepended to the template name, e.g.
	// "notifications" yields "notifications.order_confirmation".
	SubjectPrefix string
}

// message is the wire payload published for each notification.
type message struct {
	CustomerID string         `json:"customer_id"`
	Template   string         `json:"template"`
	Data       map[string]any `json:"data,omitempty"`
	SentAt     time.Time      `json:"sent_at"`
}

// NewNATSDispatcher connects to NATS and returns a dispatcher.
func NewNATSDispatcher(cfg NATSConfig) (*NATSDispatcher, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "notifications"
	}

	conn, err := nats.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSDispatcher{
		conn:    conn,
		subject: cfg.SubjectPrefix,
	}, nil
}

// Send publishes the notification to <prefix>.<template>.
func (d *NATSDispatcher) Send(ctx context.Context, customerID, template string, data map[string]any) error {
	payload, err := json.Marshal(message{
		CustomerID: customerID,
		Template:   template,
		Data:       data,
		SentAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := d.conn.Publish(d.subject+"."+template, payload); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close drains the connection, flushing buffered messages.
func (d *NATSDispatcher) Close() error {
	return d.conn.Drain()
}

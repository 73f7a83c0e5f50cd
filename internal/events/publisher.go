// Package events publishes turn telemetry over NATS. The market-pulse
// generator and analytics consumers subscribe downstream; the concierge only
// emits and runs fine without a broker configured.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectTurnCompleted carries one event per successful concierge turn.
const SubjectTurnCompleted = "marketplace.concierge.turn.completed"

// TurnCompleted is the telemetry payload for one finished turn.
type TurnCompleted struct {
	ThreadID   string `json:"thread_id"`
	UserID     string `json:"user_id,omitempty"`
	Confidence int    `json:"confidence"`
	Handoff    bool   `json:"handoff"`
	ToolCalls  int    `json:"tool_calls"`
	DurationMS int64  `json:"duration_ms"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

// PublishTurnCompleted emits the telemetry event. Failures are logged, not
// propagated. Telemetry must never fail a turn.
func (p *Publisher) PublishTurnCompleted(evt TurnCompleted) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to marshal turn event", "error", err)
		return
	}
	if err := p.conn.Publish(SubjectTurnCompleted, payload); err != nil {
		p.logger.Error("failed to publish turn event", "error", err, "thread_id", evt.ThreadID)
	}
}

func (p *Publisher) Close() {
	p.conn.Close()
}

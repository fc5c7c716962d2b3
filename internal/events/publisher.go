// Package events publishes domain events to the configured message broker.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Sender is the broker operation the publisher needs; *mq.MQ satisfies it.
type Sender interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Envelope is the JSON document written to the broker for every event.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// Publisher sends events in the background. Broker failures are logged and
// never reach the caller. A nil Publisher drops every event.
type Publisher struct {
	sender  Sender
	channel string
	logger  *zap.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewPublisher(sender Sender, channel string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		sender:  sender,
		channel: channel,
		logger:  logger,
		now:     time.Now,
	}
}

// Publish marshals payload and hands it to the broker without waiting for
// delivery.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil || p.sender == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to encode event", zap.String("type", eventType), zap.Error(err))
		return
	}
	body, err := json.Marshal(Envelope{Type: eventType, OccurredAt: p.now().UTC(), Data: data})
	if err != nil {
		p.logger.Error("failed to encode event", zap.String("type", eventType), zap.Error(err))
		return
	}

	// The request context ends with the response; delivery must not.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		id, err := p.sender.Publish(sendCtx, p.channel, body, map[string]string{"type": eventType})
		if err != nil {
			p.logger.Warn("failed to publish event",
				zap.String("type", eventType),
				zap.String("channel", p.channel),
				zap.Error(err))
			return
		}
		p.logger.Debug("event published", zap.String("type", eventType), zap.String("message_id", id))
	}()
}

// Wait blocks until in-flight publishes finish.
func (p *Publisher) Wait() {
	if p == nil {
		return
	}
	p.wg.Wait()
}

// Decode parses a broker message produced by Publish.
func Decode(data []byte) (Envelope, error) {
	var envelope Envelope
	err := json.Unmarshal(data, &envelope)
	return envelope, err
}

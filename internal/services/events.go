package services

import "context"

const (
	EventGuardianRegistered    = "guardian.registered"
	EventTransmissionPublished = "transmission.published"
	EventCommentCreated        = "comment.created"
	EventOrderCreated          = "order.created"
	EventOrderStatusChanged    = "order.status_changed"
)

// EventPublisher delivers domain events. Implementations must not block the
// caller on broker failures.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

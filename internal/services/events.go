package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventPhotoCreated   = "photo.created"
	EventPhotoDeleted   = "photo.deleted"
)

// EventPublisher sends an encoded event to a channel. *mq.MQ satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Event is the envelope published for every domain event.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// Events publishes domain events best-effort: failures are logged and never
// fail the operation that produced the event.
type Events struct {
	publisher EventPublisher
	channel   string
	log       logrus.FieldLogger
}

// NewEvents returns an emitter for channel. A nil publisher disables emission.
func NewEvents(publisher EventPublisher, channel string, log logrus.FieldLogger) *Events {
	return &Events{publisher: publisher, channel: channel, log: log}
}

func (e *Events) Emit(ctx context.Context, eventType string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		e.log.WithError(err).WithField("event", eventType).Warn("encode event payload")
		return
	}
	body, err := json.Marshal(Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		e.log.WithError(err).WithField("event", eventType).Warn("encode event")
		return
	}

	id, err := e.publisher.Publish(ctx, e.channel, body, map[string]string{"type": eventType})
	if err != nil {
		e.log.WithError(err).WithField("event", eventType).Warn("publish event")
		return
	}
	e.log.WithFields(logrus.Fields{"event": eventType, "message_id": id}).Debug("event published")
}

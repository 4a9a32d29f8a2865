package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys set on every JSON message.
const (
	MetaEventID      = "event_id"
	MetaEventVersion = "event_version"
	MetaContentType  = "content_type"
)

// NewJSONMessage encodes payload as a Watermill message tagged with eventID.
func NewJSONMessage(eventID string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetaEventID, eventID)
	msg.Metadata.Set(MetaEventVersion, "1")
	msg.Metadata.Set(MetaContentType, "application/json")
	return msg, nil
}

// Publish sends msgs to topic outside of any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// PublishInTx encodes payload and writes it to topic within tx, so the event
// commits or rolls back together with the caller's change.
func (q *EventBus) PublishInTx(ctx context.Context, tx *sql.Tx, topic, eventID string, payload any) error {
	msg, err := NewJSONMessage(eventID, payload)
	if err != nil {
		return err
	}
	injectTrace(ctx, []*message.Message{msg})

	pub, err := q.sqlPublisher(tx, false)
	if err != nil {
		return err
	}
	if err := q.wrap(pub).Publish(topic, msg); err != nil {
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// injectTrace copies the OTel trace context of ctx into message metadata.
func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

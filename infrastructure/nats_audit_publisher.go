package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"annobot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MessagePublisher sends raw payloads to a subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// PublishRecorder observes successfully published messages
type PublishRecorder interface {
	RecordNATSMessagePublished(eventType string)
}

// AuditEnvelope wraps every audit event published to NATS
type AuditEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	GuildID       int64           `json:"guild_id"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSAuditPublisher forwards committed domain events to NATS subjects
type NATSAuditPublisher struct {
	publisher MessagePublisher
	recorder  PublishRecorder
	now       func() time.Time
}

// NewNATSAuditPublisher creates a publisher. recorder may be nil.
func NewNATSAuditPublisher(publisher MessagePublisher, recorder PublishRecorder) *NATSAuditPublisher {
	return &NATSAuditPublisher{
		publisher: publisher,
		recorder:  recorder,
		now:       time.Now,
	}
}

// SubjectFor maps an event type to its audit subject
func SubjectFor(eventType events.EventType) string {
	return fmt.Sprintf("%s.%s", AuditSubjectPrefix, eventType)
}

// SubscribeTo registers the publisher for every audit event type
func (p *NATSAuditPublisher) SubscribeTo(bus *events.Bus) {
	for _, eventType := range events.AuditEventTypes {
		bus.Subscribe(eventType, p.handle)
	}
}

func (p *NATSAuditPublisher) handle(ctx context.Context, event events.Event) {
	if err := p.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"guildID":   event.Guild(),
			"error":     err,
		}).Error("Failed to publish audit event")
	}
}

// Publish wraps event in an envelope and sends it to its subject
func (p *NATSAuditPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := AuditEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		GuildID:       event.Guild(),
		Timestamp:     p.now().UTC(),
		SourceService: "annobot",
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := SubjectFor(event.Type())
	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		return err
	}

	if p.recorder != nil {
		p.recorder.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
		"eventID":   envelope.EventID,
	}).Debug("Published audit event")
	return nil
}

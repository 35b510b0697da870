package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"mortgage-connect-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher writes lead events to the LEADS stream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	if err := ensureStream(context.Background(), js); err != nil {
		// NATS may still be starting; the stream is created on a later run.
		log.Printf("Warn: failed to ensure stream %s: %v", StreamName, err)
	}
	return &Publisher{nc: nc, js: js}, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	subject := Subject(event.EventType())
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(msgID(event))); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

// msgID keys JetStream deduplication on the lead, so the same lead event is
// stored once even when the consumer replays it.
func msgID(event events.Event) string {
	if id := events.StringField(event, "lead_id"); id != "" {
		return event.EventType() + ":" + id
	}
	return fmt.Sprintf("%s:%d", event.EventType(), event.Timestamp().UnixNano())
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

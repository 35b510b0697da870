package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/pkg/mailer"
	"mortgage-connect-be/pkg/events"
	pktNats "mortgage-connect-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to string
	n  mailer.LeadNotification
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) SendLeadNotification(to string, n mailer.LeadNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, n: n})
	return nil
}

func (f *fakeMailer) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type fakeSubscriber struct {
	eventType string
	durable   string
	handler   pktNats.EventHandler
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error {
	f.eventType, f.durable, f.handler = eventType, durableName, handler
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeEvents) Publish(ctx context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.EventType())
	}
	return out
}

func notifyBrand() *config.Brand {
	b := config.DefaultBrand()
	b.NotifyEmail = "leads@example.com"
	return b
}

func TestNotificationServiceHandlesLeadSubmitted(t *testing.T) {
	mail := &fakeMailer{}
	sub := &fakeSubscriber{}
	svc := NewNotificationService(sub, mail, notifyBrand(), logger.NewNopLogger())

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, events.TypeLeadSubmitted, sub.eventType)
	require.NotNil(t, sub.handler)

	// answers arrive as a generic map after the JetStream round trip
	err := sub.handler(context.Background(), events.LeadSubmitted(map[string]interface{}{
		"lead_id":    "l-1",
		"name":       "Jane Doe",
		"crm_status": "crm_failed",
		"answers":    map[string]interface{}{"zipCode": "85712"},
	}))
	require.NoError(t, err)

	sent := mail.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "leads@example.com", sent[0].to)
	assert.Equal(t, "Jane Doe", sent[0].n.Name)
	assert.Equal(t, "85712", sent[0].n.Answers["zipCode"])
}

func TestNotificationServiceWithoutAddressSkips(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewNotificationService(nil, mail, config.DefaultBrand(), logger.NewNopLogger())

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Notify(context.Background(), mailer.LeadNotification{LeadId: "l-1"}))
	assert.Empty(t, mail.all())
}

func publishLeadReceived(t *testing.T, pubSub *gochannel.GoChannel, msg dto.LeadReceivedMessage) {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish("lead.received", message.NewMessage(watermill.NewUUID(), payload)))
}

func TestConsumerNotifiesDirectlyWithoutEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	mail := &fakeMailer{}
	notifier := NewNotificationService(nil, mail, notifyBrand(), logger.NewNopLogger())

	cs := NewConsumerService(pubSub, "lead.received", nil, notifier, logger.NewNopLogger())
	require.NoError(t, cs.Consume(context.Background()))

	publishLeadReceived(t, pubSub, dto.LeadReceivedMessage{LeadId: uuid.New(), Name: "Jane Doe", CrmStatus: string(entity.LeadCrmSubmitted)})

	assert.Eventually(t, func() bool { return len(mail.all()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestConsumerPublishesEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	mail := &fakeMailer{}
	ev := &fakeEvents{}
	notifier := NewNotificationService(nil, mail, notifyBrand(), logger.NewNopLogger())

	cs := NewConsumerService(pubSub, "lead.received", ev, notifier, logger.NewNopLogger())
	require.NoError(t, cs.Consume(context.Background()))

	publishLeadReceived(t, pubSub, dto.LeadReceivedMessage{LeadId: uuid.New(), CrmStatus: string(entity.LeadCrmFailed)})

	assert.Eventually(t, func() bool { return len(ev.types()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{events.TypeLeadSubmitted, events.TypeLeadCrmFailed}, ev.types())
	assert.Empty(t, mail.all())
}

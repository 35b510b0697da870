package service

import (
	"context"
	"fmt"

	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/pkg/mailer"
	"mortgage-connect-be/pkg/events"
	pktNats "mortgage-connect-be/pkg/nats"
)

const leadNotifierDurable = "lead-notifier"

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, durableName string, handler pktNats.EventHandler) error
}

type INotificationService interface {
	Start(ctx context.Context) error
	Notify(ctx context.Context, n mailer.LeadNotification) error
}

type notificationService struct {
	subscriber EventSubscriber
	email      mailer.IEmailService
	brand      *config.Brand
	logger     logger.ILogger
}

// NewNotificationService mails the brand inbox for every new lead. subscriber
// may be nil, in which case only direct Notify calls send mail.
func NewNotificationService(subscriber EventSubscriber, email mailer.IEmailService, brand *config.Brand, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		email:      email,
		brand:      brand,
		logger:     log,
	}
}

func (s *notificationService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe(ctx, events.TypeLeadSubmitted, leadNotifierDurable, s.handleLeadSubmitted)
}

func (s *notificationService) handleLeadSubmitted(ctx context.Context, event events.Event) error {
	n := mailer.LeadNotification{
		LeadId:    events.StringField(event, "lead_id"),
		FormType:  events.StringField(event, "form_type"),
		Name:      events.StringField(event, "name"),
		Email:     events.StringField(event, "email"),
		Phone:     events.StringField(event, "phone"),
		CrmStatus: events.StringField(event, "crm_status"),
		Answers:   stringMap(event.Payload()["answers"]),
	}
	return s.Notify(ctx, n)
}

func (s *notificationService) Notify(ctx context.Context, n mailer.LeadNotification) error {
	if s.brand.NotifyEmail == "" {
		s.logger.Debug("NotificationService", "No notify address configured, skipping email", map[string]interface{}{"lead_id": n.LeadId})
		return nil
	}
	if err := s.email.SendLeadNotification(s.brand.NotifyEmail, n); err != nil {
		s.logger.Error("NotificationService", "Failed to send lead notification", map[string]interface{}{
			"lead_id": n.LeadId,
			"error":   err.Error(),
		})
		return err
	}
	s.logger.Info("NotificationService", "Lead notification sent", map[string]interface{}{"lead_id": n.LeadId})
	return nil
}

// stringMap accepts both a typed map and the map[string]interface{} that
// comes back out of a JSON round trip.
func stringMap(v interface{}) map[string]string {
	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, val := range m {
			if s, ok := val.(string); ok {
				out[k] = s
			} else if val != nil {
				out[k] = fmt.Sprint(val)
			}
		}
		return out
	}
	return nil
}

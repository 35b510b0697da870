package service

import (
	"context"
	"encoding/json"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/pkg/mailer"
	"mortgage-connect-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	events    EventPublisher
	notifier  INotificationService
	logger    logger.ILogger
}

// NewConsumerService fans lead.received out to JetStream. Without an event
// publisher, or when publishing fails, it notifies the inbox directly.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher EventPublisher,
	notifier INotificationService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		events:    eventPublisher,
		notifier:  notifier,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LeadReceivedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal lead.received", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if cs.events != nil && cs.publish(ctx, payload) {
		msg.Ack()
		return
	}

	// Mail failures are logged by the notifier; redelivering would not help.
	_ = cs.notifier.Notify(ctx, mailer.LeadNotification{
		LeadId:    payload.LeadId.String(),
		FormType:  payload.FormType,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		CrmStatus: payload.CrmStatus,
		Answers:   payload.Answers,
	})
	msg.Ack()
}

func (cs *consumerService) publish(ctx context.Context, payload dto.LeadReceivedMessage) bool {
	data := map[string]interface{}{
		"lead_id":    payload.LeadId.String(),
		"form_type":  payload.FormType,
		"name":       payload.Name,
		"email":      payload.Email,
		"phone":      payload.Phone,
		"crm_status": payload.CrmStatus,
		"answers":    payload.Answers,
	}

	if err := cs.events.Publish(ctx, events.LeadSubmitted(data)); err != nil {
		cs.logger.Warn("ConsumerService", "Event publish failed, notifying directly", map[string]interface{}{
			"lead_id": payload.LeadId.String(),
			"error":   err.Error(),
		})
		return false
	}

	if payload.CrmStatus == string(entity.LeadCrmFailed) {
		if err := cs.events.Publish(ctx, events.LeadCrmFailed(data)); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish LEAD_CRM_FAILED", map[string]interface{}{"error": err.Error()})
		}
	}
	return true
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-studyplanner-be/internal/pkg/logger"
	"ai-studyplanner-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains schedule lifecycle events and writes them to the
// notification log. A push channel (websocket, email) would hang off this
// same subscription.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	notifyLogs logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notifyLogs logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		notifyLogs: notifyLogs,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		// Ack invalid messages to prevent infinite retry
		cs.notifyLogs.Error("consumer", "failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	switch envelope.Type {
	case events.TypeScheduleCreated:
		cs.notifyLogs.Info("notification", "schedule created", map[string]interface{}{
			"schedule_id": envelope.Data["schedule_id"],
			"user_id":     envelope.Data["user_id"],
			"title":       envelope.Data["title"],
			"task_count":  envelope.Data["task_count"],
			"occurred_at": envelope.OccurredAt,
		})
	default:
		cs.notifyLogs.Warn("consumer", "unknown event type", map[string]interface{}{
			"type": envelope.Type,
		})
	}
	msg.Ack()
}

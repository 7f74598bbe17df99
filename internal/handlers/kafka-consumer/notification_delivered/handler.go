package notification_delivered

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatcher/internal/dto"
	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"

	"github.com/IBM/sarama"
)

var errEmptyRecipient = errors.New("notification without recipient")

type Handler struct {
	sink                     Sink
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, sink Sink, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "notification.delivered"),
	)

	return &Handler{
		sink:                     sink,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// Возвращает true, если сессия закрыта и ConsumeClaim нужно прервать без коммита.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	notification, err := decode(message.Value)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("bad notification message")
		sess.MarkMessage(message, "")
		return false
	}

	if ctx.Err() != nil {
		h.log.With(
			logger.NewField("order", notification.OrderID),
			logger.NewField("offset", message.Offset),
		).Warn("context cancelled, message will be reprocessed")
		return true
	}

	h.sink.Notify(ctx, notification)
	sess.MarkMessage(message, "")
	return false
}

func decode(value []byte) (entities.Notification, error) {
	var event dto.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return entities.Notification{}, err
	}
	if event.RecipientID == "" {
		return entities.Notification{}, errEmptyRecipient
	}
	return event.ToEntity(), nil
}

package notification

import (
	"context"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

// LogNotifier пишет уведомления в лог. Используется, когда Kafka выключена,
// и воркером уведомлений как конечная точка доставки.
type LogNotifier struct {
	log handlerLogger
}

func NewLogNotifier(log handlerLogger) *LogNotifier {
	return &LogNotifier{
		log: log.With(
			logger.NewField("component", "notifications"),
		),
	}
}

func (n *LogNotifier) Notify(ctx context.Context, notification entities.Notification) {
	n.log.Info("notification",
		logger.NewField("recipient", notification.RecipientID),
		logger.NewField("recipient_kind", notification.RecipientKind.String()),
		logger.NewField("order", notification.OrderID),
		logger.NewField("message", notification.Message),
	)
}

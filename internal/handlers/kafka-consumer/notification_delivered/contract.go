//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_delivered_test
package notification_delivered

import (
	"context"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Sink interface {
	Notify(ctx context.Context, notification entities.Notification)
}

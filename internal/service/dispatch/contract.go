//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

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

type OrderRegistry interface {
	Get(ctx context.Context, orderID string) (*entities.Order, error)
	Transition(ctx context.Context, orderModify entities.OrderModify) (*entities.OrderTransition, error)
}

type DriverRegistry interface {
	ListAvailable(ctx context.Context) ([]entities.Driver, error)
	SetStatus(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error)
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification)
}

type Clock interface {
	Now() time.Time
}

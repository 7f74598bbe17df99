//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_timeout_test
package order_timeout

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

type OrderLister interface {
	List(ctx context.Context) ([]entities.Order, error)
}

type Canceller interface {
	Cancel(ctx context.Context, orderID string) (*entities.Order, error)
}

type Clock interface {
	Now() time.Time
}

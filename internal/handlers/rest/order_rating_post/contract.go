//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_rating_post_test
package order_rating_post

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

type Service interface {
	RateDriver(ctx context.Context, orderID string, stars int) (*entities.Order, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_pickup_post_test
package order_pickup_post

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
	PickupOrder(ctx context.Context, orderID, driverID string) (*entities.Order, error)
}

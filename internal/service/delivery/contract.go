//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

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

type CustomerRegistry interface {
	Onboard(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error)
	Get(ctx context.Context, customerID string) (*entities.Customer, error)
}

type DriverRegistry interface {
	Onboard(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error)
	Get(ctx context.Context, driverID string) (*entities.Driver, error)
	List(ctx context.Context) ([]entities.Driver, error)
	AddRating(ctx context.Context, driverID string, stars int, previous *int) (*entities.Driver, error)
}

type OrderRegistry interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	Get(ctx context.Context, orderID string) (*entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	Transition(ctx context.Context, orderModify entities.OrderModify) (*entities.OrderTransition, error)
	SetRating(ctx context.Context, orderID string, stars int) (*int, *entities.Order, error)
}

type Dispatcher interface {
	Enqueue(ctx context.Context, orderID string) error
	OnDriverFreed(ctx context.Context, driverID string)
	Cancel(ctx context.Context, orderID string) (*entities.Order, error)
	ReleaseDriver(ctx context.Context, driverID string, orderID string) error
	Pending(ctx context.Context) []string
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification)
}

type Clock interface {
	Now() time.Time
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=persistence_test
package persistence

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

type Repository interface {
	SaveCustomers(ctx context.Context, customers []entities.Customer) error
	SaveDrivers(ctx context.Context, drivers []entities.Driver) error
	SaveOrders(ctx context.Context, orders []entities.Order) error
	LoadCustomers(ctx context.Context) ([]entities.Customer, error)
	LoadDrivers(ctx context.Context) ([]entities.Driver, error)
	LoadOrders(ctx context.Context) ([]entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type CustomerRegistry interface {
	List(ctx context.Context) ([]entities.Customer, error)
	Restore(ctx context.Context, customers []entities.Customer) error
}

type DriverRegistry interface {
	List(ctx context.Context) ([]entities.Driver, error)
	Restore(ctx context.Context, drivers []entities.Driver) error
}

type OrderRegistry interface {
	List(ctx context.Context) ([]entities.Order, error)
	Restore(ctx context.Context, orders []entities.Order) error
}

type Dispatcher interface {
	Enqueue(ctx context.Context, orderID string) error
}

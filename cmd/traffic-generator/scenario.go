package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"dispatcher/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_operations_total",
		Help: "API calls made by the traffic generator",
	}, []string{"operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_operation_duration_seconds",
		Help:    "API call latency seen by the traffic generator",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"operation"})
)

var items = []string{"ITEM1", "ITEM2", "ITEM3"}

// scenario гоняет полный цикл заказа: создание, забор, доставка, оценка.
// Часть заказов отменяется, чтобы нагрузить ветку отмены.
type scenario struct {
	log    logger.Logger
	client *apiClient
	rand   *rand.Rand

	customers  []string
	drivers    []string
	cancelRate float64
}

func (s *scenario) setup(ctx context.Context) error {
	for _, id := range s.customers {
		if err := s.call(ctx, "onboard_customer", func(ctx context.Context) error {
			return s.client.onboardCustomer(ctx, id, "customer "+id)
		}); err != nil {
			return fmt.Errorf("onboard customer %s: %w", id, err)
		}
	}
	for _, id := range s.drivers {
		if err := s.call(ctx, "onboard_driver", func(ctx context.Context) error {
			return s.client.onboardDriver(ctx, id, "driver "+id)
		}); err != nil {
			return fmt.Errorf("onboard driver %s: %w", id, err)
		}
	}
	return nil
}

// iteration проводит один заказ. Заказ, оставшийся в очереди, отменяется.
func (s *scenario) iteration(ctx context.Context) error {
	customerID := s.customers[s.rand.IntN(len(s.customers))]
	itemID := items[s.rand.IntN(len(items))]

	order, err := s.createOrder(ctx, customerID, itemID, 1+s.rand.IntN(3))
	if err != nil {
		return err
	}

	if order.DriverID == nil || s.rand.Float64() < s.cancelRate {
		return s.call(ctx, "cancel", func(ctx context.Context) error {
			return s.client.cancel(ctx, order.ID)
		})
	}
	driverID := *order.DriverID

	if err := s.call(ctx, "pickup", func(ctx context.Context) error {
		return s.client.pickup(ctx, order.ID, driverID)
	}); err != nil {
		return err
	}
	if err := s.call(ctx, "complete", func(ctx context.Context) error {
		return s.client.complete(ctx, order.ID, driverID)
	}); err != nil {
		return err
	}
	return s.call(ctx, "rate", func(ctx context.Context) error {
		return s.client.rate(ctx, order.ID, 1+s.rand.IntN(5))
	})
}

func (s *scenario) createOrder(ctx context.Context, customerID, itemID string, quantity int) (orderResult, error) {
	var result orderResult
	err := s.call(ctx, "create_order", func(ctx context.Context) error {
		order, err := s.client.createOrder(ctx, customerID, itemID, quantity)
		result = orderResult{ID: order.ID, DriverID: order.DriverID}
		return err
	})
	return result, err
}

type orderResult struct {
	ID       string
	DriverID *string
}

func (s *scenario) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		operationsTotal.WithLabelValues(operation, "error").Inc()
		s.log.Warn("operation failed",
			logger.NewField("operation", operation),
			logger.NewField("error", err),
		)
		return err
	}
	operationsTotal.WithLabelValues(operation, "ok").Inc()
	return nil
}

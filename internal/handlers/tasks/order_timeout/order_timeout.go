package order_timeout

import (
	"context"
	"fmt"
	"time"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

// OrderTimeout периодически отменяет заказы, которые слишком долго
// ждут курьера или доставки. Сам заказы не меняет, только вызывает отмену.
type OrderTimeout struct {
	log       handlerLogger
	orders    OrderLister
	canceller Canceller
	clock     Clock

	timeout  time.Duration
	interval time.Duration
}

func NewOrderTimeout(
	log handlerLogger,
	orders OrderLister,
	canceller Canceller,
	clock Clock,
	timeout time.Duration,
	interval time.Duration,
) *OrderTimeout {
	return &OrderTimeout{
		log:       log,
		orders:    orders,
		canceller: canceller,
		clock:     clock,
		timeout:   timeout,
		interval:  interval,
	}
}

func (o *OrderTimeout) TTL() time.Duration {
	return o.interval
}

// Do возвращает ошибку только если не удалось получить список заказов.
// Ошибки отмены отдельных заказов логируются и не прерывают проход.
func (o *OrderTimeout) Do(ctx context.Context) error {
	start := time.Now()
	defer func() {
		SweepsTotal.Inc()
		SweepDuration.Observe(time.Since(start).Seconds())
	}()

	orders, err := o.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	now := o.clock.Now()
	var cancelled int
	for i := range orders {
		order := &orders[i]
		if !o.expired(order, now) {
			continue
		}

		o.log.Info("auto-cancelling order due to timeout",
			logger.NewField("order", order.ID),
			logger.NewField("status", order.Status.String()),
			logger.NewField("age", now.Sub(order.CreatedAt).String()),
		)

		if _, err := o.canceller.Cancel(ctx, order.ID); err != nil {
			ExpiredOrdersTotal.WithLabelValues("failed").Inc()
			o.log.Error("auto-cancel order",
				logger.NewField("order", order.ID),
				logger.NewField("error", err),
			)
			continue
		}
		ExpiredOrdersTotal.WithLabelValues("cancelled").Inc()
		cancelled++
	}

	if cancelled > 0 {
		o.log.With(
			logger.NewField("cancelled_orders", cancelled),
		).Info("order timeout sweep")
	}
	return nil
}

func (o *OrderTimeout) Info() string {
	return "order timeout"
}

func (o *OrderTimeout) expired(order *entities.Order, now time.Time) bool {
	switch order.Status {
	case entities.OrderCreated, entities.OrderAssigned:
		return now.Sub(order.CreatedAt) > o.timeout
	default:
		return false
	}
}

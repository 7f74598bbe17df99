package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

// Engine держит очередь ожидающих заказов и сводит их со свободными курьерами.
// Все операции сериализуются одним мьютексом, уведомления отправляются после
// его освобождения.
type Engine struct {
	mu     sync.Mutex
	queue  []string
	queued map[string]struct{}

	orders   OrderRegistry
	drivers  DriverRegistry
	notifier Notifier
	clock    Clock
	log      handlerLogger
}

func New(log handlerLogger, orders OrderRegistry, drivers DriverRegistry, notifier Notifier, clock Clock) *Engine {
	return &Engine{
		queued:   make(map[string]struct{}),
		orders:   orders,
		drivers:  drivers,
		notifier: notifier,
		clock:    clock,
		log: log.With(
			logger.NewField("component", "dispatch"),
		),
	}
}

// Enqueue ставит заказ в конец очереди и сразу пробует его назначить.
// Отсутствующий, уже не CREATED или уже стоящий в очереди заказ пропускается.
func (e *Engine) Enqueue(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrInvalidOrderID
	}

	e.mu.Lock()
	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, entities.ErrNotFound) {
			e.log.Warn("enqueue skipped, order not found",
				logger.NewField("order", orderID),
			)
			return nil
		}
		return fmt.Errorf("enqueue order %s: %w", orderID, err)
	}

	if order.Status != entities.OrderCreated {
		e.mu.Unlock()
		e.log.Debug("enqueue skipped, order is not CREATED",
			logger.NewField("order", orderID),
			logger.NewField("status", order.Status.String()),
		)
		return nil
	}

	if _, ok := e.queued[orderID]; !ok {
		e.queue = append(e.queue, orderID)
		e.queued[orderID] = struct{}{}
	}

	notifications := e.drain(ctx)
	e.mu.Unlock()

	e.notify(ctx, notifications)
	return nil
}

// OnDriverFreed пробует раздать очередь после появления свободного курьера.
func (e *Engine) OnDriverFreed(ctx context.Context, driverID string) {
	e.mu.Lock()
	notifications := e.drain(ctx)
	e.mu.Unlock()

	if len(notifications) > 0 {
		e.log.Debug("queue drained on driver freed",
			logger.NewField("driver", driverID),
			logger.NewField("notifications", len(notifications)),
		)
	}
	e.notify(ctx, notifications)
}

// Cancel отменяет заказ. Если он был назначен, курьер освобождается
// и сразу получает следующий заказ из очереди.
func (e *Engine) Cancel(ctx context.Context, orderID string) (*entities.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}

	e.mu.Lock()
	cancelled := entities.OrderCancelled
	transition, err := e.orders.Transition(ctx, entities.OrderModify{
		ID:     &orderID,
		Status: &cancelled,
	})
	if err != nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	e.remove(orderID)

	previous := transition.Previous
	if previous.Status == entities.OrderCancelled {
		e.mu.Unlock()
		return &transition.Current, nil
	}

	CancellationsTotal.WithLabelValues(previous.Status.String()).Inc()
	notifications := cancelledNotifications(transition, e.clock.Now().UTC())

	if previous.Status == entities.OrderAssigned && previous.DriverID != "" {
		if err := e.release(ctx, previous.DriverID, orderID); err != nil {
			e.log.Error("release driver of cancelled order",
				logger.NewField("order", orderID),
				logger.NewField("driver", previous.DriverID),
				logger.NewField("error", err),
			)
		}
		notifications = append(notifications, e.drain(ctx)...)
	}
	e.mu.Unlock()

	e.log.Info("order cancelled",
		logger.NewField("order", orderID),
		logger.NewField("previous_status", previous.Status.String()),
	)
	e.notify(ctx, notifications)

	return &transition.Current, nil
}

// ReleaseDriver освобождает курьера после доставки заказа и раздает очередь.
func (e *Engine) ReleaseDriver(ctx context.Context, driverID, orderID string) error {
	e.mu.Lock()
	err := e.release(ctx, driverID, orderID)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("release driver %s: %w", driverID, err)
	}
	notifications := e.drain(ctx)
	e.mu.Unlock()

	e.notify(ctx, notifications)
	return nil
}

// Pending возвращает копию очереди в порядке FIFO.
func (e *Engine) Pending(ctx context.Context) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := make([]string, len(e.queue))
	copy(pending, e.queue)
	return pending
}

// drain вызывается под e.mu.
func (e *Engine) drain(ctx context.Context) []entities.Notification {
	defer func() {
		PendingQueueLength.Set(float64(len(e.queue)))
	}()

	if len(e.queue) == 0 {
		return nil
	}

	candidates, err := e.drivers.ListAvailable(ctx)
	if err != nil {
		e.log.Error("list available drivers",
			logger.NewField("error", err),
		)
		return nil
	}

	var notifications []entities.Notification
	for len(e.queue) > 0 && len(candidates) > 0 {
		orderID := e.queue[0]

		order, err := e.orders.Get(ctx, orderID)
		if err != nil || order.Status != entities.OrderCreated {
			e.popFront()
			StaleEntriesTotal.Inc()
			e.log.Debug("stale queue entry discarded",
				logger.NewField("order", orderID),
			)
			continue
		}

		e.popFront()
		driver := candidates[0]
		candidates = candidates[1:]

		assigned, err := e.assign(ctx, orderID, &driver)
		if err != nil {
			AssignmentFailuresTotal.Inc()
			e.log.Error("assignment failed",
				logger.NewField("order", orderID),
				logger.NewField("driver", driver.ID),
				logger.NewField("error", err),
			)
			if e.isCreated(ctx, orderID) {
				e.pushFront(orderID)
			}
			break
		}

		AssignmentsTotal.Inc()
		e.log.Info("order assigned",
			logger.NewField("order", orderID),
			logger.NewField("driver", driver.ID),
		)
		notifications = append(notifications, assignedNotifications(assigned, &driver, e.clock.Now().UTC())...)
	}

	return notifications
}

// assign сначала занимает курьера, затем переводит заказ в ASSIGNED.
// Если заказ перевести не удалось, курьер возвращается в AVAILABLE.
func (e *Engine) assign(ctx context.Context, orderID string, driver *entities.Driver) (*entities.Order, error) {
	busy := entities.DriverBusy
	_, err := e.drivers.SetStatus(ctx, entities.DriverModify{
		ID:             &driver.ID,
		Status:         &busy,
		CurrentOrderID: &orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("claim driver: %w", err)
	}

	assignedStatus := entities.OrderAssigned
	transition, err := e.orders.Transition(ctx, entities.OrderModify{
		ID:       &orderID,
		Status:   &assignedStatus,
		DriverID: &driver.ID,
	})
	if err != nil {
		if rollbackErr := e.release(ctx, driver.ID, orderID); rollbackErr != nil {
			return nil, fmt.Errorf("assign order: %w (driver rollback: %w)", err, rollbackErr)
		}
		return nil, fmt.Errorf("assign order: %w", err)
	}

	return &transition.Current, nil
}

func (e *Engine) release(ctx context.Context, driverID, orderID string) error {
	available := entities.DriverAvailable
	_, err := e.drivers.SetStatus(ctx, entities.DriverModify{
		ID:             &driverID,
		Status:         &available,
		CurrentOrderID: &orderID,
	})
	return err
}

func (e *Engine) isCreated(ctx context.Context, orderID string) bool {
	order, err := e.orders.Get(ctx, orderID)
	return err == nil && order.Status == entities.OrderCreated
}

func (e *Engine) popFront() {
	orderID := e.queue[0]
	e.queue = e.queue[1:]
	delete(e.queued, orderID)
}

func (e *Engine) pushFront(orderID string) {
	if _, ok := e.queued[orderID]; ok {
		return
	}
	e.queue = append([]string{orderID}, e.queue...)
	e.queued[orderID] = struct{}{}
}

func (e *Engine) remove(orderID string) {
	if _, ok := e.queued[orderID]; !ok {
		return
	}
	for i, id := range e.queue {
		if id == orderID {
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			break
		}
	}
	delete(e.queued, orderID)
	PendingQueueLength.Set(float64(len(e.queue)))
}

func (e *Engine) notify(ctx context.Context, notifications []entities.Notification) {
	for _, notification := range notifications {
		e.notifier.Notify(ctx, notification)
	}
}

package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"dispatcher/internal/entities"
)

// Registry хранит заказы в памяти и единолично меняет их статус.
// Наружу отдаются только копии.
type Registry struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
	clock  Clock
	ids    IDGenerator
}

func New(clock Clock, ids IDGenerator) *Registry {
	return &Registry{
		orders: make(map[string]*entities.Order),
		clock:  clock,
		ids:    ids,
	}
}

func (r *Registry) Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.CustomerID == nil ||
		orderModify.ItemID == nil ||
		orderModify.Quantity == nil {
		return nil, ErrMissingRequiredFields
	}

	order := &entities.Order{
		ID:         r.ids.NewID(),
		CustomerID: *orderModify.CustomerID,
		ItemID:     *orderModify.ItemID,
		Quantity:   *orderModify.Quantity,
		Status:     entities.OrderCreated,
		CreatedAt:  r.clock.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return nil, fmt.Errorf("create order %s: %w", order.ID, ErrOrderAlreadyExists)
	}
	r.orders[order.ID] = order

	return cloneOrder(order), nil
}

func (r *Registry) Get(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("get order %s: %w", orderID, ErrOrderNotFound)
	}
	return cloneOrder(order), nil
}

// List возвращает заказы в порядке создания.
func (r *Registry) List(ctx context.Context) ([]entities.Order, error) {
	r.mu.RLock()
	orders := make([]entities.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *cloneOrder(order))
	}
	r.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// Transition переводит заказ в новый статус по таблице переходов.
// Проверка текущего статуса и запись нового выполняются под одной блокировкой.
// Переход в текущий статус ничего не меняет и считается успешным.
func (r *Registry) Transition(ctx context.Context, orderModify entities.OrderModify) (*entities.OrderTransition, error) {
	if orderModify.ID == nil || orderModify.Status == nil {
		return nil, ErrMissingRequiredFields
	}
	orderID := *orderModify.ID
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	next := *orderModify.Status
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedStatus, next)
	}

	var driverID string
	if orderModify.DriverID != nil {
		driverID = strings.TrimSpace(*orderModify.DriverID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("transition order %s: %w", orderID, ErrOrderNotFound)
	}
	previous := cloneOrder(order)

	// курьер сверяется раньше статуса: чужой курьер не узнает о состоянии заказа
	if next == entities.OrderPickedUp || next == entities.OrderDelivered {
		if driverID != "" && driverID != order.DriverID {
			return nil, fmt.Errorf("%w: driver %s, order %s", entities.ErrNotAssignedToDriver, driverID, orderID)
		}
	}

	if order.Status == next {
		if next == entities.OrderAssigned && driverID != "" && driverID != order.DriverID {
			return nil, fmt.Errorf("%w: driver %s, order %s", entities.ErrNotAssignedToDriver, driverID, orderID)
		}
		return &entities.OrderTransition{
			Previous: *previous,
			Current:  *cloneOrder(order),
		}, nil
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: order %s from %s to %s", entities.ErrInvalidTransition, orderID, order.Status, next)
	}

	now := r.clock.Now().UTC()
	switch next {
	case entities.OrderAssigned:
		if driverID == "" {
			return nil, ErrDriverRequired
		}
		order.DriverID = driverID
		order.AssignedAt = &now
	case entities.OrderPickedUp:
		order.PickedUpAt = &now
	case entities.OrderDelivered:
		order.DeliveredAt = &now
	case entities.OrderCancelled:
		order.DriverID = ""
	}
	order.Status = next

	return &entities.OrderTransition{
		Previous: *previous,
		Current:  *cloneOrder(order),
	}, nil
}

// SetRating сохраняет оценку доставленного заказа. Повторная оценка
// перезаписывает предыдущую, она возвращается первым значением.
func (r *Registry) SetRating(ctx context.Context, orderID string, stars int) (*int, *entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, nil, ErrInvalidOrderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, nil, fmt.Errorf("rate order %s: %w", orderID, ErrOrderNotFound)
	}
	if order.Status != entities.OrderDelivered {
		return nil, nil, fmt.Errorf("rate order %s in status %s: %w", orderID, order.Status, ErrOrderNotDelivered)
	}

	previous := order.Rating
	order.Rating = &stars

	return previous, cloneOrder(order), nil
}

// Restore заменяет содержимое реестра заказами из снапшота.
func (r *Registry) Restore(ctx context.Context, orders []entities.Order) error {
	restored := make(map[string]*entities.Order, len(orders))
	for i := range orders {
		order := cloneOrder(&orders[i])
		if !isValidOrderID(order.ID) || !order.Status.IsValid() {
			return fmt.Errorf("restore order %q: %w", order.ID, ErrUndefinedStatus)
		}
		if !isConsistent(order) {
			return fmt.Errorf("restore order %s: %w", order.ID, ErrCorruptedOrder)
		}
		restored[order.ID] = order
	}

	r.mu.Lock()
	r.orders = restored
	r.mu.Unlock()

	return nil
}

func cloneOrder(order *entities.Order) *entities.Order {
	clone := *order
	clone.AssignedAt = clonePtr(order.AssignedAt)
	clone.PickedUpAt = clonePtr(order.PickedUpAt)
	clone.DeliveredAt = clonePtr(order.DeliveredAt)
	if order.Rating != nil {
		rating := *order.Rating
		clone.Rating = &rating
	}
	return &clone
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

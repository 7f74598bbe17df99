package entities

import "time"

type Order struct {
	ID          string
	CustomerID  string
	ItemID      string
	Quantity    int
	Status      OrderStatusType
	DriverID    string
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	Rating      *int
}

type OrderStatusType string

const (
	OrderCreated   OrderStatusType = "CREATED"
	OrderAssigned  OrderStatusType = "ASSIGNED"
	OrderPickedUp  OrderStatusType = "PICKED_UP"
	OrderDelivered OrderStatusType = "DELIVERED"
	OrderCancelled OrderStatusType = "CANCELLED"
)

// orderTransitions таблица допустимых переходов, других путей нет.
var orderTransitions = map[OrderStatusType]map[OrderStatusType]bool{
	OrderCreated: {
		OrderAssigned:  true,
		OrderCancelled: true,
	},
	OrderAssigned: {
		OrderPickedUp:  true,
		OrderCancelled: true,
	},
	OrderPickedUp: {
		OrderDelivered: true,
	},
	OrderDelivered: {},
	OrderCancelled: {},
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatusType) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

func (s OrderStatusType) CanTransitionTo(next OrderStatusType) bool {
	return orderTransitions[s][next]
}

// HasDriver сообщает, должен ли у заказа в этом статусе быть назначенный курьер.
func (s OrderStatusType) HasDriver() bool {
	switch s {
	case OrderAssigned, OrderPickedUp, OrderDelivered:
		return true
	default:
		return false
	}
}

type OrderModify struct {
	ID         *string
	CustomerID *string
	ItemID     *string
	Quantity   *int
	Status     *OrderStatusType
	DriverID   *string
}

// OrderTransition состояние заказа до и после перехода.
type OrderTransition struct {
	Previous Order
	Current  Order
}

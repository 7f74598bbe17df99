package dto

import "dispatcher/internal/entities"

func NewCustomer(customer *entities.Customer) Customer {
	return Customer{
		ID:        customer.ID,
		Name:      customer.Name,
		CreatedAt: customer.CreatedAt,
	}
}

func NewDriver(driver *entities.Driver) Driver {
	return Driver{
		ID:             driver.ID,
		Name:           driver.Name,
		VehicleType:    driver.VehicleType,
		Status:         driver.Status.String(),
		CurrentOrderID: optional(driver.CurrentOrderID),
		AverageRating:  driver.AverageRating(),
		RatingsCount:   driver.RatingsCount,
		CreatedAt:      driver.CreatedAt,
	}
}

func NewOrder(order *entities.Order) Order {
	return Order{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		ItemID:      order.ItemID,
		Quantity:    order.Quantity,
		Status:      order.Status.String(),
		DriverID:    optional(order.DriverID),
		CreatedAt:   order.CreatedAt,
		AssignedAt:  order.AssignedAt,
		PickedUpAt:  order.PickedUpAt,
		DeliveredAt: order.DeliveredAt,
		Rating:      order.Rating,
	}
}

func NewNotificationEvent(notification *entities.Notification) NotificationEvent {
	return NotificationEvent{
		RecipientID:   notification.RecipientID,
		RecipientKind: notification.RecipientKind.String(),
		OrderID:       notification.OrderID,
		Message:       notification.Message,
		CreatedAt:     notification.CreatedAt,
	}
}

func (e NotificationEvent) ToEntity() entities.Notification {
	return entities.Notification{
		RecipientID:   e.RecipientID,
		RecipientKind: entities.RecipientKind(e.RecipientKind),
		OrderID:       e.OrderID,
		Message:       e.Message,
		CreatedAt:     e.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

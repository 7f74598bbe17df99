package dispatch

import (
	"fmt"
	"time"

	"dispatcher/internal/entities"
)

func assignedNotifications(order *entities.Order, driver *entities.Driver, now time.Time) []entities.Notification {
	return []entities.Notification{
		{
			RecipientID:   order.CustomerID,
			RecipientKind: entities.RecipientCustomer,
			OrderID:       order.ID,
			Message:       fmt.Sprintf("Order %s assigned to %s", order.ID, driver.Name),
			CreatedAt:     now,
		},
		{
			RecipientID:   driver.ID,
			RecipientKind: entities.RecipientDriver,
			OrderID:       order.ID,
			Message:       fmt.Sprintf("You have been assigned order %s", order.ID),
			CreatedAt:     now,
		},
	}
}

func cancelledNotifications(transition *entities.OrderTransition, now time.Time) []entities.Notification {
	order := transition.Current
	notifications := []entities.Notification{{
		RecipientID:   order.CustomerID,
		RecipientKind: entities.RecipientCustomer,
		OrderID:       order.ID,
		Message:       fmt.Sprintf("Your order %s has been cancelled.", order.ID),
		CreatedAt:     now,
	}}

	if transition.Previous.DriverID != "" {
		notifications = append(notifications, entities.Notification{
			RecipientID:   transition.Previous.DriverID,
			RecipientKind: entities.RecipientDriver,
			OrderID:       order.ID,
			Message:       fmt.Sprintf("Order %s cancelled. You are free.", order.ID),
			CreatedAt:     now,
		})
	}
	return notifications
}

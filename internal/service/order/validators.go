package order

import (
	"strings"

	"dispatcher/internal/entities"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

// isConsistent проверяет инвариант: курьер указан тогда и только тогда,
// когда статус ASSIGNED, PICKED_UP или DELIVERED.
func isConsistent(order *entities.Order) bool {
	return order.Status.HasDriver() == (order.DriverID != "")
}

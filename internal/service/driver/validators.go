package driver

import (
	"strings"

	"dispatcher/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidStatus(status entities.DriverStatusType) bool {
	switch status {
	case entities.DriverAvailable, entities.DriverBusy:
		return true
	default:
		return false
	}
}

func isValidStars(stars int) bool {
	return stars >= 1 && stars <= 5
}

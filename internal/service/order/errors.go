package order

import (
	"fmt"

	"dispatcher/internal/entities"
)

var (
	ErrMissingRequiredFields = fmt.Errorf("missing required fields: %w", entities.ErrInvalidArgument)
	ErrInvalidOrderID        = fmt.Errorf("invalid order id: %w", entities.ErrInvalidArgument)
	ErrUndefinedStatus       = fmt.Errorf("undefined order status: %w", entities.ErrInvalidArgument)
	ErrDriverRequired        = fmt.Errorf("driver id is required: %w", entities.ErrInvalidArgument)
	ErrCorruptedOrder        = fmt.Errorf("order violates driver invariant: %w", entities.ErrInvalidArgument)

	ErrOrderNotFound      = fmt.Errorf("order %w", entities.ErrNotFound)
	ErrOrderAlreadyExists = fmt.Errorf("order already exists: %w", entities.ErrConflict)
	ErrOrderNotDelivered  = fmt.Errorf("order is not delivered: %w", entities.ErrConflict)
)

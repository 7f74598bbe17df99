package customer

import (
	"fmt"

	"dispatcher/internal/entities"
)

var (
	ErrMissingRequiredFields = fmt.Errorf("missing required fields: %w", entities.ErrInvalidArgument)
	ErrInvalidCustomerID     = fmt.Errorf("invalid customer id: %w", entities.ErrInvalidArgument)
	ErrInvalidName           = fmt.Errorf("invalid name: %w", entities.ErrInvalidArgument)

	ErrCustomerNotFound = fmt.Errorf("customer %w", entities.ErrNotFound)
)

package driver

import (
	"fmt"

	"dispatcher/internal/entities"
)

var (
	ErrMissingRequiredFields = fmt.Errorf("missing required fields: %w", entities.ErrInvalidArgument)
	ErrInvalidDriverID       = fmt.Errorf("invalid driver id: %w", entities.ErrInvalidArgument)
	ErrInvalidName           = fmt.Errorf("invalid name: %w", entities.ErrInvalidArgument)
	ErrInvalidStatus         = fmt.Errorf("invalid status: %w", entities.ErrInvalidArgument)
	ErrInvalidRating         = fmt.Errorf("invalid rating: %w", entities.ErrInvalidArgument)

	ErrDriverNotFound      = fmt.Errorf("driver %w", entities.ErrNotFound)
	ErrDriverNotAvailable  = fmt.Errorf("driver is not available: %w", entities.ErrConflict)
	ErrDriverOrderMismatch = fmt.Errorf("driver is bound to another order: %w", entities.ErrConflict)
	ErrCorruptedDriver     = fmt.Errorf("driver violates current order invariant: %w", entities.ErrInvalidArgument)
)

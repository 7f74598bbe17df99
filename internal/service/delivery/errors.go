package delivery

import (
	"fmt"

	"dispatcher/internal/entities"
)

var (
	ErrMissingRequiredFields = fmt.Errorf("missing required fields: %w", entities.ErrInvalidArgument)
	ErrInvalidOrderID        = fmt.Errorf("invalid order id: %w", entities.ErrInvalidArgument)
	ErrInvalidDriverID       = fmt.Errorf("invalid driver id: %w", entities.ErrInvalidArgument)
	ErrInvalidRating         = fmt.Errorf("rating must be between 1 and 5: %w", entities.ErrInvalidArgument)

	ErrUnknownItem        = fmt.Errorf("item is not valid: %w", entities.ErrInvalidItem)
	ErrQuantityOutOfRange = fmt.Errorf("quantity out of range: %w", entities.ErrInvalidQuantity)
)

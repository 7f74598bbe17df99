package dispatch

import (
	"fmt"

	"dispatcher/internal/entities"
)

var ErrInvalidOrderID = fmt.Errorf("invalid order id: %w", entities.ErrInvalidArgument)

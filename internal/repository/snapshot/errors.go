package snapshot

import (
	"fmt"

	"dispatcher/internal/entities"
)

var ErrInvariantViolation = fmt.Errorf("snapshot violates storage constraints: %w", entities.ErrInvalidArgument)

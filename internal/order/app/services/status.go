package services

import (
	"fmt"
	"slices"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/models"
)

// checkTransition enforces the strict lifecycle: known statuses only, never moving backwards.
func checkTransition(from, to string) error {
	next := slices.Index(models.Statuses, to)
	if next < 0 {
		return fmt.Errorf("%w: %q is not one of %v", core.ErrInvalidStatus, to, models.Statuses)
	}
	// a stored status outside the lifecycle (written before strict mode) can move anywhere
	prev := slices.Index(models.Statuses, from)
	if prev > next {
		return fmt.Errorf("%w: cannot move from %s back to %s", core.ErrInvalidStatus, from, to)
	}
	return nil
}

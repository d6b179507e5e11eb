package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/xpkg/tracing"
)

// ReferenceValidator checks that an order's user and restaurant exist before it is created.
type ReferenceValidator struct {
	refs core.IReferenceChecker
}

func NewReferenceValidator(refs core.IReferenceChecker) *ReferenceValidator {
	return &ReferenceValidator{refs: refs}
}

// Validate queries both services and returns, in priority order:
// an *UnreachableError if either could not be reached (user first),
// a *ReferenceNotFoundError if either reported 404 (user first), or nil.
func (v *ReferenceValidator) Validate(ctx context.Context, userID, restaurantID string) error {
	return tracing.Run(ctx, "order.validate_references", func(ctx context.Context) error {
		var (
			userOK, restaurantOK   bool
			userErr, restaurantErr error
		)

		var g errgroup.Group
		g.Go(func() error {
			userOK, userErr = v.refs.UserExists(ctx, userID)
			return nil
		})
		g.Go(func() error {
			restaurantOK, restaurantErr = v.refs.RestaurantExists(ctx, restaurantID)
			return nil
		})
		_ = g.Wait()

		switch {
		case userErr != nil:
			return &core.UnreachableError{Service: core.RefUser, Err: userErr}
		case restaurantErr != nil:
			return &core.UnreachableError{Service: core.RefRestaurant, Err: restaurantErr}
		case !userOK:
			return &core.ReferenceNotFoundError{Ref: core.RefUser, ID: userID}
		case !restaurantOK:
			return &core.ReferenceNotFoundError{Ref: core.RefRestaurant, ID: restaurantID}
		}
		return nil
	}, attribute.String("user.id", userID), attribute.String("restaurant.id", restaurantID))
}

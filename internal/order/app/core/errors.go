package core

import (
	"errors"
	"fmt"

	xerrors "food-delivery/internal/xpkg/errors"
)

const (
	RefUser       = "user"
	RefRestaurant = "restaurant"
)

var (
	ErrOrderNotFound       = errors.New("Order not found")
	ErrReferenceNotFound   = errors.New("reference not found")
	ErrUpstreamUnreachable = errors.New("upstream service unreachable")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidOrder        = errors.New("invalid order")

	ErrFieldIsEmpty = xerrors.ErrFieldIsEmpty
	ErrInvalidBody  = xerrors.ErrInvalidBody
)

// ReferenceNotFoundError names the referenced entity another service reported missing.
type ReferenceNotFoundError struct {
	Ref string
	ID  string
}

func (e *ReferenceNotFoundError) Error() string {
	switch e.Ref {
	case RefUser:
		return "User not found"
	case RefRestaurant:
		return "Restaurant not found"
	}
	return fmt.Sprintf("%s not found", e.Ref)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// UnreachableError reports a peer service that could not be reached.
type UnreachableError struct {
	Service string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Cannot reach %s service", e.Service)
}

func (e *UnreachableError) Is(target error) bool {
	return target == ErrUpstreamUnreachable
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

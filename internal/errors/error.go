package errors

import (
	"errors"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrForbidden        = errors.New("role is not allowed to perform this action")
	ErrUnknownRole      = errors.New("unknown role")
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrSlotUnavailable  = errors.New("time slot is not offered or not available")
	ErrFullyBooked      = errors.New("accommodation is fully booked")
	ErrItemUnavailable  = errors.New("menu item is not available")
	ErrConcurrentUpdate = errors.New("cart was modified concurrently, retry")
)

package http

import (
	"errors"
	"net/http"

	inErrors "github.com/Alturino/journey/internal/errors"
)

func StatusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrEmptyAuth), errors.Is(err, inErrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrAlreadyExists), errors.Is(err, inErrors.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrSlotUnavailable),
		errors.Is(err, inErrors.ErrFullyBooked),
		errors.Is(err, inErrors.ErrItemUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

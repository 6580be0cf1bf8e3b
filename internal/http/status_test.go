package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	inErrors "github.com/Alturino/journey/internal/errors"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "given wrapped not found should be 404", err: fmt.Errorf("failed finding with error=%w", inErrors.ErrNotFound), expected: http.StatusNotFound},
		{name: "given joined forbidden should be 403", err: errors.Join(inErrors.ErrForbidden, errors.New("role")), expected: http.StatusForbidden},
		{name: "given invalid token should be 401", err: inErrors.ErrTokenInvalid, expected: http.StatusUnauthorized},
		{name: "given duplicate should be 409", err: inErrors.ErrAlreadyExists, expected: http.StatusConflict},
		{name: "given concurrent update should be 409", err: inErrors.ErrConcurrentUpdate, expected: http.StatusConflict},
		{name: "given fully booked should be 422", err: inErrors.ErrFullyBooked, expected: http.StatusUnprocessableEntity},
		{name: "given unknown error should be 500", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, StatusFromError(test.err))
		})
	}
}

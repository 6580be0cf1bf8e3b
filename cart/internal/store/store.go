// Package store persists journey carts keyed by visitor session.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Alturino/journey/cart/pkg/journey"
)

const KEY_CARTS = "journey:carts:"

// Store keeps one cart per session. Update runs fn against the current cart
// and persists the result atomically with respect to other updates of the
// same session. A missing or expired session reads as an empty cart.
type Store interface {
	Load(c context.Context, sessionID uuid.UUID) (*journey.Cart, error)
	Update(c context.Context, sessionID uuid.UUID, fn func(*journey.Cart) error) (*journey.Cart, error)
	Delete(c context.Context, sessionID uuid.UUID) error
}

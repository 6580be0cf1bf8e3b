package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/journey/cart/pkg/journey"
)

type Cart struct {
	SessionID uuid.UUID       `json:"sessionId"`
	Items     []journey.Item  `json:"items"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

func NewCart(sessionID uuid.UUID, cart *journey.Cart) Cart {
	items := cart.Items()
	if items == nil {
		items = []journey.Item{}
	}
	return Cart{
		SessionID: sessionID,
		Items:     items,
		ItemCount: len(items),
		Total:     cart.Total(),
	}
}

type AddItem struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Outcome string `json:"outcome"`
	ItemID  string `json:"itemId,omitempty"`
	Cart    Cart   `json:"cart"`
}

type Conflict struct {
	HasConflict bool       `json:"hasConflict"`
	ItemName    string     `json:"itemName,omitempty"`
	ItemID      *uuid.UUID `json:"itemId,omitempty"`
	Message     string     `json:"message,omitempty"`
}

type Removal struct {
	Removed int  `json:"removed"`
	Cart    Cart `json:"cart"`
}

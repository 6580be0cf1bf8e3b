package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Slot struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Available bool      `json:"available"`
}

type Experience struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	IsPaid      bool            `json:"isPaid"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	IsVisible   bool            `json:"isVisible"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	Slots       []Slot          `json:"availableSlots"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsFullyBooked reports whether no offered slot is still available.
func (e Experience) IsFullyBooked() bool {
	for _, slot := range e.Slots {
		if slot.Available {
			return false
		}
	}
	return true
}

type Accommodation struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Amenities     []string        `json:"amenities"`
	IsFullyBooked bool            `json:"isFullyBooked"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type MenuItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Venue       string          `json:"venue"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

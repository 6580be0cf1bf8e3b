package request

import (
	"github.com/google/uuid"

	"github.com/Alturino/journey/cart/pkg/journey"
)

type Slot struct {
	Date      string `validate:"required,datetime=2006-01-02" json:"date"`
	StartTime string `validate:"required,datetime=15:04"      json:"startTime"`
	EndTime   string `validate:"required,datetime=15:04"      json:"endTime"`
}

func (s Slot) TimeSlot() journey.TimeSlot {
	return journey.TimeSlot{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime, Available: true}
}

// AddItem references a catalog entry by id; the cart service resolves name
// and price from the catalog so clients cannot set them.
type AddItem struct {
	Kind         string                `validate:"required,oneof=experience accommodation food" json:"kind"`
	EntityID     uuid.UUID             `validate:"required"                                     json:"entityId"`
	Slot         *Slot                 `validate:"required_if=Kind experience"                  json:"selectedSlot,omitempty"`
	Dates        *journey.StayDates    `validate:"required_if=Kind accommodation"               json:"selectedDates,omitempty"`
	OrderDetails *journey.OrderDetails `validate:"required_if=Kind food"                        json:"orderDetails,omitempty"`
	ReferralCode string                `validate:"omitempty,alphanum,max=32"                    json:"referralCode,omitempty"`
}

type CheckConflict struct {
	Slot Slot `validate:"required" json:"slot"`
}

package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/journey/catalog/pkg/response"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Int:              d.Coefficient(),
		NaN:              false,
		Valid:            true,
	}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (s ExperienceSlot) Response() response.Slot {
	return response.Slot{
		ID:        s.ID,
		Date:      s.SlotDate,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Available: s.Available,
	}
}

// Response attaches only the slots belonging to e.
func (e Experience) Response(slots []ExperienceSlot) response.Experience {
	resSlots := []response.Slot{}
	for _, slot := range slots {
		if slot.ExperienceID == e.ID {
			resSlots = append(resSlots, slot.Response())
		}
	}
	return response.Experience{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		IsPaid:      e.IsPaid,
		Price:       DecimalFromNumeric(e.Price),
		ImageURL:    e.ImageUrl,
		IsVisible:   e.IsVisible,
		CreatedBy:   e.CreatedBy,
		Slots:       resSlots,
		CreatedAt:   e.CreatedAt.Time,
		UpdatedAt:   e.UpdatedAt.Time,
	}
}

func (a Accommodation) Response() response.Accommodation {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return response.Accommodation{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		Category:      a.Category,
		ImageURL:      a.ImageUrl,
		PricePerNight: DecimalFromNumeric(a.PricePerNight),
		Amenities:     amenities,
		IsFullyBooked: a.IsFullyBooked,
		CreatedAt:     a.CreatedAt.Time,
		UpdatedAt:     a.UpdatedAt.Time,
	}
}

func (m MenuItem) Response() response.MenuItem {
	return response.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Venue:       m.Venue,
		Price:       DecimalFromNumeric(m.Price),
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt.Time,
		UpdatedAt:   m.UpdatedAt.Time,
	}
}

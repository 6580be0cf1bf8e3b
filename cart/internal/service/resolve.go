package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alturino/journey/cart/pkg/journey"
	"github.com/Alturino/journey/cart/pkg/request"
	inErrors "github.com/Alturino/journey/internal/errors"
)

// resolve builds a cart item from the catalog entry param references. Names
// and prices always come from the catalog.
func (svc CartService) resolve(c context.Context, param request.AddItem) (journey.Item, error) {
	kind, err := journey.ParseKind(param.Kind)
	if err != nil {
		return journey.Item{}, err
	}

	var item journey.Item
	switch kind {
	case journey.KindExperience:
		if param.Slot == nil {
			return journey.Item{}, fmt.Errorf("%w: experience without slot", journey.ErrMalformedItem)
		}
		experience, err := svc.catalog.FindExperienceById(c, param.EntityID)
		if err != nil {
			return journey.Item{}, err
		}
		offered := false
		for _, slot := range experience.Slots {
			if slot.Date == param.Slot.Date &&
				slot.StartTime == param.Slot.StartTime &&
				slot.EndTime == param.Slot.EndTime {
				offered = slot.Available
				break
			}
		}
		if !offered {
			return journey.Item{}, fmt.Errorf("%s on %s at %s with error=%w",
				experience.Name, param.Slot.Date, param.Slot.StartTime, inErrors.ErrSlotUnavailable)
		}
		price := experience.Price
		if !experience.IsPaid {
			price = decimal.Zero
		}
		item = journey.NewExperienceItem(journey.Experience{
			ID:          experience.ID,
			Name:        experience.Name,
			Price:       price,
			Description: experience.Description,
			ImageURL:    experience.ImageURL,
			Category:    experience.Category,
		}, param.Slot.TimeSlot())
	case journey.KindAccommodation:
		if param.Dates == nil {
			return journey.Item{}, fmt.Errorf("%w: accommodation without dates", journey.ErrMalformedItem)
		}
		accommodation, err := svc.catalog.FindAccommodationById(c, param.EntityID)
		if err != nil {
			return journey.Item{}, err
		}
		if accommodation.IsFullyBooked {
			return journey.Item{}, fmt.Errorf("%s with error=%w", accommodation.Name, inErrors.ErrFullyBooked)
		}
		item = journey.NewStayItem(journey.Accommodation{
			ID:            accommodation.ID,
			Name:          accommodation.Name,
			PricePerNight: accommodation.PricePerNight,
			Category:      accommodation.Category,
		}, *param.Dates)
	case journey.KindFood:
		if param.OrderDetails == nil {
			return journey.Item{}, fmt.Errorf("%w: food without order details", journey.ErrMalformedItem)
		}
		menuItem, err := svc.catalog.FindMenuItemById(c, param.EntityID)
		if err != nil {
			return journey.Item{}, err
		}
		if !menuItem.IsAvailable {
			return journey.Item{}, fmt.Errorf("%s with error=%w", menuItem.Name, inErrors.ErrItemUnavailable)
		}
		item = journey.NewFoodItem(journey.MenuItem{
			ID:          menuItem.ID,
			Name:        menuItem.Name,
			Price:       menuItem.Price,
			Venue:       menuItem.Venue,
			Description: menuItem.Description,
		}, *param.OrderDetails)
	default:
		return journey.Item{}, fmt.Errorf("%w: kind=%s", journey.ErrMalformedItem, kind)
	}

	if param.ReferralCode != "" {
		item = item.WithReferralCode(param.ReferralCode)
	}
	return item, nil
}

package journey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMalformedItem = errors.New("malformed cart item")

type Kind int

const (
	KindUnknown Kind = iota
	KindExperience
	KindAccommodation
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindExperience:
		return "experience"
	case KindAccommodation:
		return "accommodation"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "experience":
		return KindExperience, nil
	case "accommodation":
		return KindAccommodation, nil
	case "food":
		return KindFood, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown kind=%q", ErrMalformedItem, s)
	}
}

type Experience struct {
	ID          uuid.UUID       `                    json:"id"`
	Name        string          `validate:"required" json:"name"`
	Price       decimal.Decimal `                    json:"price"`
	Description string          `                    json:"description,omitempty"`
	ImageURL    string          `                    json:"imageUrl,omitempty"`
	Category    string          `                    json:"category,omitempty"`
}

type Accommodation struct {
	ID            uuid.UUID       `                    json:"id"`
	Name          string          `validate:"required" json:"name"`
	PricePerNight decimal.Decimal `                    json:"pricePerNight"`
	Category      string          `                    json:"category,omitempty"`
}

type MenuItem struct {
	ID          uuid.UUID       `                    json:"id"`
	Name        string          `validate:"required" json:"name"`
	Price       decimal.Decimal `                    json:"price"`
	Venue       string          `                    json:"venue,omitempty"`
	Description string          `                    json:"description,omitempty"`
}

type DeliveryOption string

const (
	DineIn   DeliveryOption = "dine-in"
	Takeaway DeliveryOption = "takeaway"
	Delivery DeliveryOption = "delivery"
)

type OrderDetails struct {
	DeliveryOption DeliveryOption `validate:"required,oneof=dine-in takeaway delivery" json:"deliveryOption"`
	ScheduledTime  string         `validate:"omitempty,datetime=15:04"                 json:"scheduledTime,omitempty"`
	Notes          string         `validate:"max=500"                                  json:"notes,omitempty"`
}

type ExperienceBooking struct {
	Experience Experience `json:"experience"`
	Slot       TimeSlot   `json:"selectedSlot"`
}

type StayBooking struct {
	Accommodation Accommodation `json:"accommodation"`
	Dates         StayDates     `json:"selectedDates"`
}

type FoodOrder struct {
	MenuItem MenuItem     `json:"menuItem"`
	Details  OrderDetails `json:"orderDetails"`
}

// Item holds exactly one of the three booking payloads. Items are built with
// NewExperienceItem, NewStayItem or NewFoodItem; the zero Item is malformed.
type Item struct {
	id            uuid.UUID
	kind          Kind
	experience    *ExperienceBooking
	accommodation *StayBooking
	food          *FoodOrder
	referralCode  string
}

func NewExperienceItem(experience Experience, slot TimeSlot) Item {
	return Item{
		id:         uuid.New(),
		kind:       KindExperience,
		experience: &ExperienceBooking{Experience: experience, Slot: slot},
	}
}

func NewStayItem(accommodation Accommodation, dates StayDates) Item {
	return Item{
		id:            uuid.New(),
		kind:          KindAccommodation,
		accommodation: &StayBooking{Accommodation: accommodation, Dates: dates},
	}
}

func NewFoodItem(menuItem MenuItem, details OrderDetails) Item {
	return Item{
		id:   uuid.New(),
		kind: KindFood,
		food: &FoodOrder{MenuItem: menuItem, Details: details},
	}
}

func (i Item) WithReferralCode(code string) Item {
	i.referralCode = code
	return i
}

func (i Item) ID() uuid.UUID        { return i.id }
func (i Item) Kind() Kind           { return i.kind }
func (i Item) ReferralCode() string { return i.referralCode }

func (i Item) Experience() (ExperienceBooking, bool) {
	if i.kind != KindExperience || i.experience == nil {
		return ExperienceBooking{}, false
	}
	return *i.experience, true
}

func (i Item) Stay() (StayBooking, bool) {
	if i.kind != KindAccommodation || i.accommodation == nil {
		return StayBooking{}, false
	}
	return *i.accommodation, true
}

func (i Item) Food() (FoodOrder, bool) {
	if i.kind != KindFood || i.food == nil {
		return FoodOrder{}, false
	}
	return *i.food, true
}

// Name is the display name of the booked catalog entity.
func (i Item) Name() string {
	switch i.kind {
	case KindExperience:
		return i.experience.Experience.Name
	case KindAccommodation:
		return i.accommodation.Accommodation.Name
	case KindFood:
		return i.food.MenuItem.Name
	default:
		return ""
	}
}

// Subtotal is what the item contributes to the cart total.
func (i Item) Subtotal() decimal.Decimal {
	switch i.kind {
	case KindExperience:
		return i.experience.Experience.Price
	case KindAccommodation:
		nights := decimal.NewFromInt(i.accommodation.Dates.Nights())
		return i.accommodation.Accommodation.PricePerNight.Mul(nights)
	case KindFood:
		return i.food.MenuItem.Price
	default:
		return decimal.Zero
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func itemValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the variant invariant and the payload fields.
func (i Item) Validate() error {
	set := 0
	if i.experience != nil {
		set++
	}
	if i.accommodation != nil {
		set++
	}
	if i.food != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: expected exactly one payload, got %d", ErrMalformedItem, set)
	}
	if i.id == uuid.Nil {
		return fmt.Errorf("%w: missing item id", ErrMalformedItem)
	}

	v := itemValidator()
	switch i.kind {
	case KindExperience:
		if i.experience == nil {
			return fmt.Errorf("%w: experience item without experience payload", ErrMalformedItem)
		}
		if err := v.Struct(i.experience.Experience); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if err := v.Struct(i.experience.Slot); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if i.experience.Experience.Price.IsNegative() {
			return fmt.Errorf("%w: negative price", ErrMalformedItem)
		}
		return i.experience.Slot.Validate()
	case KindAccommodation:
		if i.accommodation == nil {
			return fmt.Errorf("%w: accommodation item without accommodation payload", ErrMalformedItem)
		}
		if err := v.Struct(i.accommodation.Accommodation); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if err := v.Struct(i.accommodation.Dates); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if i.accommodation.Accommodation.PricePerNight.IsNegative() {
			return fmt.Errorf("%w: negative price per night", ErrMalformedItem)
		}
		return nil
	case KindFood:
		if i.food == nil {
			return fmt.Errorf("%w: food item without food payload", ErrMalformedItem)
		}
		if err := v.Struct(i.food.MenuItem); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if err := v.Struct(i.food.Details); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedItem, err)
		}
		if i.food.MenuItem.Price.IsNegative() {
			return fmt.Errorf("%w: negative price", ErrMalformedItem)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind=%s", ErrMalformedItem, i.kind)
	}
}

package journey

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

type itemJSON struct {
	ID            uuid.UUID          `json:"id"`
	Kind          string             `json:"kind"`
	ReferralCode  string             `json:"referralCode,omitempty"`
	Experience    *ExperienceBooking `json:"experience,omitempty"`
	Accommodation *StayBooking       `json:"accommodation,omitempty"`
	Food          *FoodOrder         `json:"food,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(itemJSON{
		ID:            i.id,
		Kind:          i.kind.String(),
		ReferralCode:  i.referralCode,
		Experience:    i.experience,
		Accommodation: i.accommodation,
		Food:          i.food,
	})
}

func (i *Item) UnmarshalJSON(data []byte) error {
	raw := itemJSON{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedItem, err)
	}
	kind, err := ParseKind(raw.Kind)
	if err != nil {
		return err
	}
	decoded := Item{
		id:            raw.ID,
		kind:          kind,
		experience:    raw.Experience,
		accommodation: raw.Accommodation,
		food:          raw.Food,
		referralCode:  raw.ReferralCode,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*i = decoded
	return nil
}

type cartJSON struct {
	Items []Item `json:"items"`
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.Items()
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(cartJSON{Items: items})
}

// UnmarshalJSON rejects carts the engine could not have produced: repeated
// item ids, overlapping experience slots or two stays at one accommodation.
func (c *Cart) UnmarshalJSON(data []byte) error {
	raw := cartJSON{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := Cart{items: make([]Item, 0, len(raw.Items))}
	seen := make(map[uuid.UUID]struct{}, len(raw.Items))
	for _, item := range raw.Items {
		if _, ok := seen[item.id]; ok {
			return fmt.Errorf("%w: duplicate item id=%s", ErrMalformedItem, item.id)
		}
		seen[item.id] = struct{}{}

		switch item.kind {
		case KindExperience:
			w, _ := item.experience.Slot.window()
			if conflict := decoded.conflictLocked(w); conflict.HasConflict {
				return fmt.Errorf("%w: %q overlaps %q", ErrMalformedItem, item.Name(), conflict.ItemName)
			}
		case KindAccommodation:
			name := item.accommodation.Accommodation.Name
			if slices.ContainsFunc(decoded.items, func(existing Item) bool {
				stay, ok := existing.Stay()
				return ok && stay.Accommodation.Name == name
			}) {
				return fmt.Errorf("%w: accommodation %q booked twice", ErrMalformedItem, name)
			}
		}
		decoded.items = append(decoded.items, item)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = decoded.items
	return nil
}

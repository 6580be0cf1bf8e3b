// Package journey holds a visitor's cart of experience bookings,
// accommodation stays and food orders. It rejects experience bookings whose
// time slots overlap, keeps at most one booking per accommodation and derives
// the cart total.
package journey

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Outcome int

const (
	Appended Outcome = iota + 1
	Replaced
	Duplicate
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Appended:
		return "appended"
	case Replaced:
		return "replaced"
	case Duplicate:
		return "duplicate"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type AddResult struct {
	Success bool
	Message string
	Outcome Outcome
}

type Conflict struct {
	HasConflict bool
	ItemName    string
	ItemID      uuid.UUID
}

// Cart is safe for concurrent use; every operation runs under one lock and
// observes the effects of all operations that returned before it.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) HasTimeConflict(slot TimeSlot) (Conflict, error) {
	w, err := slot.window()
	if err != nil {
		return Conflict{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conflictLocked(w), nil
}

func (c *Cart) conflictLocked(candidate window) Conflict {
	for _, item := range c.items {
		booking, ok := item.Experience()
		if !ok {
			continue
		}
		w, err := booking.Slot.window()
		if err != nil {
			continue
		}
		if w.overlaps(candidate) {
			return Conflict{HasConflict: true, ItemName: booking.Experience.Name, ItemID: item.id}
		}
	}
	return Conflict{}
}

func ConflictMessage(name string) string {
	return fmt.Sprintf("This time slot conflicts with %q in your journey", name)
}

// Add applies the booking rules in order: experience conflicts are rejected,
// an accommodation replaces any booking of the same accommodation name, an
// experience already booked for the same date and start time is absorbed,
// anything else is appended. The returned error is non-nil only when item is
// malformed.
func (c *Cart) Add(item Item) (AddResult, error) {
	if err := item.Validate(); err != nil {
		return AddResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch item.kind {
	case KindExperience:
		candidate, _ := item.experience.Slot.window()
		if conflict := c.conflictLocked(candidate); conflict.HasConflict {
			return AddResult{
				Success: false,
				Message: ConflictMessage(conflict.ItemName),
				Outcome: Rejected,
			}, nil
		}
		if c.hasSameBookingLocked(*item.experience) {
			return AddResult{Success: true, Outcome: Duplicate}, nil
		}
	case KindAccommodation:
		name := item.accommodation.Accommodation.Name
		before := len(c.items)
		c.items = slices.DeleteFunc(c.items, func(existing Item) bool {
			stay, ok := existing.Stay()
			return ok && stay.Accommodation.Name == name
		})
		c.items = append(c.items, item)
		if len(c.items) <= before {
			return AddResult{Success: true, Outcome: Replaced}, nil
		}
		return AddResult{Success: true, Outcome: Appended}, nil
	}

	c.items = append(c.items, item)
	return AddResult{Success: true, Outcome: Appended}, nil
}

// hasSameBookingLocked matches on name, date and start time. A well-formed
// identical slot is already rejected as a conflict, so this holds the
// no-duplicate rule on its own should the conflict rule ever be relaxed.
func (c *Cart) hasSameBookingLocked(candidate ExperienceBooking) bool {
	return slices.ContainsFunc(c.items, func(existing Item) bool {
		booking, ok := existing.Experience()
		return ok &&
			booking.Experience.Name == candidate.Experience.Name &&
			booking.Slot.Date == candidate.Slot.Date &&
			booking.Slot.StartTime == candidate.Slot.StartTime
	})
}

// Remove drops every experience or accommodation item whose name equals
// name and returns how many were removed.
func (c *Cart) Remove(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item Item) bool {
		switch item.kind {
		case KindExperience, KindAccommodation:
			return item.Name() == name
		default:
			return false
		}
	})
	return before - len(c.items)
}

func (c *Cart) RemoveItem(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item Item) bool { return item.id == id })
	return len(c.items) < before
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

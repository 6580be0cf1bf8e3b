package journey

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type TimeSlot struct {
	Date      string `validate:"required,datetime=2006-01-02" json:"date"`
	StartTime string `validate:"required,datetime=15:04"      json:"startTime"`
	EndTime   string `validate:"required,datetime=15:04"      json:"endTime"`
	Available bool   `                                        json:"available"`
}

// window is a slot resolved to minutes since midnight on its date.
type window struct {
	date  string
	start int
	end   int
}

func (s TimeSlot) window() (window, error) {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return window{}, fmt.Errorf("%w: invalid slot date=%q", ErrMalformedItem, s.Date)
	}
	start, err := minutesOf(s.StartTime)
	if err != nil {
		return window{}, err
	}
	end, err := minutesOf(s.EndTime)
	if err != nil {
		return window{}, err
	}
	if end <= start {
		return window{}, fmt.Errorf(
			"%w: slot endTime=%s is not after startTime=%s",
			ErrMalformedItem,
			s.EndTime,
			s.StartTime,
		)
	}
	return window{date: s.Date, start: start, end: end}, nil
}

func minutesOf(clock string) (int, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time=%q", ErrMalformedItem, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (w window) overlaps(o window) bool {
	if w.date != o.date {
		return false
	}
	return w.start < o.end && w.end > o.start
}

// Overlaps reports whether both slots are on the same date and their
// [start, end) intervals intersect. Malformed slots never overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	w, err := s.window()
	if err != nil {
		return false
	}
	ow, err := o.window()
	if err != nil {
		return false
	}
	return w.overlaps(ow)
}

// Validate reports ErrMalformedItem when the slot cannot be resolved to a
// non-empty window.
func (s TimeSlot) Validate() error {
	_, err := s.window()
	return err
}

type StayDates struct {
	CheckIn  time.Time `validate:"required"                 json:"checkIn"`
	CheckOut time.Time `validate:"required,gtfield=CheckIn" json:"checkOut"`
}

// Nights rounds partial days up to a full night.
func (d StayDates) Nights() int64 {
	diff := d.CheckOut.Sub(d.CheckIn)
	if diff <= 0 {
		return 0
	}
	nights := int64(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

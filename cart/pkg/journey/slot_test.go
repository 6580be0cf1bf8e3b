package journey

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slot(date, start, end string) TimeSlot {
	return TimeSlot{Date: date, StartTime: start, EndTime: end, Available: true}
}

func TestTimeSlotOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        TimeSlot
		b        TimeSlot
		expected bool
	}{
		{
			name:     "given touching boundary should not overlap",
			a:        slot("2024-03-20", "09:00", "10:00"),
			b:        slot("2024-03-20", "10:00", "11:00"),
			expected: false,
		},
		{
			name:     "given one minute past boundary should overlap",
			a:        slot("2024-03-20", "09:00", "10:01"),
			b:        slot("2024-03-20", "10:00", "11:00"),
			expected: true,
		},
		{
			name:     "given identical times on different dates should not overlap",
			a:        slot("2024-03-20", "10:00", "12:00"),
			b:        slot("2024-03-21", "10:00", "12:00"),
			expected: false,
		},
		{
			name:     "given slot contained in another should overlap",
			a:        slot("2024-03-20", "09:00", "17:00"),
			b:        slot("2024-03-20", "13:00", "14:00"),
			expected: true,
		},
		{
			name:     "given identical slots should overlap",
			a:        slot("2024-03-20", "10:00", "12:00"),
			b:        slot("2024-03-20", "10:00", "12:00"),
			expected: true,
		},
		{
			name:     "given malformed slot should not overlap",
			a:        slot("2024-03-20", "10:00", "09:00"),
			b:        slot("2024-03-20", "08:00", "12:00"),
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.a.Overlaps(test.b))
			assert.Equal(t, test.expected, test.b.Overlaps(test.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    TimeSlot
		wantErr bool
	}{
		{name: "given well formed slot should pass", slot: slot("2024-03-20", "10:00", "12:00")},
		{name: "given bad date should fail", slot: slot("20-03-2024", "10:00", "12:00"), wantErr: true},
		{name: "given bad clock should fail", slot: slot("2024-03-20", "25:00", "26:00"), wantErr: true},
		{name: "given empty slot should fail", slot: TimeSlot{}, wantErr: true},
		{name: "given zero length slot should fail", slot: slot("2024-03-20", "10:00", "10:00"), wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.slot.Validate()
			if !test.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrMalformedItem))
		})
	}
}

func TestStayDatesNights(t *testing.T) {
	day0 := time.Date(2024, time.March, 20, 14, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		dates    StayDates
		expected int64
	}{
		{name: "given three full days should be three nights", dates: StayDates{CheckIn: day0, CheckOut: day0.AddDate(0, 0, 3)}, expected: 3},
		{name: "given partial day should round up", dates: StayDates{CheckIn: day0, CheckOut: day0.Add(25 * time.Hour)}, expected: 2},
		{name: "given a few hours should be one night", dates: StayDates{CheckIn: day0, CheckOut: day0.Add(2 * time.Hour)}, expected: 1},
		{name: "given reversed dates should be zero", dates: StayDates{CheckIn: day0, CheckOut: day0.Add(-time.Hour)}, expected: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.dates.Nights())
		})
	}
}

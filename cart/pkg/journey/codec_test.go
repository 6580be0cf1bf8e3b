package journey

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartJSONRoundTrip(t *testing.T) {
	cart := NewCart()
	mustAdd(t, cart, NewExperienceItem(palmHat, slot("2024-03-20", "10:00", "12:00")).WithReferralCode("GUIDE42"))
	mustAdd(t, cart, NewStayItem(villa, stay(0, 3)))
	mustAdd(t, cart, NewFoodItem(nasi, OrderDetails{DeliveryOption: Delivery, ScheduledTime: "19:30", Notes: "no chili"}))

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	decoded := NewCart()
	require.NoError(t, json.Unmarshal(data, decoded))

	expected, actual := cart.Items(), decoded.Items()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].ID(), actual[i].ID())
		assert.Equal(t, expected[i].Kind(), actual[i].Kind())
		assert.Equal(t, expected[i].Name(), actual[i].Name())
		assert.Equal(t, expected[i].ReferralCode(), actual[i].ReferralCode())
		assert.True(t, expected[i].Subtotal().Equal(actual[i].Subtotal()))
	}
	assert.True(t, cart.Total().Equal(decoded.Total()))

	booking, ok := actual[0].Experience()
	require.True(t, ok)
	assert.Equal(t, slot("2024-03-20", "10:00", "12:00"), booking.Slot)
	stayBooking, ok := actual[1].Stay()
	require.True(t, ok)
	assert.True(t, stay(0, 3).CheckIn.Equal(stayBooking.Dates.CheckIn))
	assert.True(t, stay(0, 3).CheckOut.Equal(stayBooking.Dates.CheckOut))
	order, ok := actual[2].Food()
	require.True(t, ok)
	assert.Equal(t, OrderDetails{DeliveryOption: Delivery, ScheduledTime: "19:30", Notes: "no chili"}, order.Details)
}

func TestEmptyCartJSON(t *testing.T) {
	data, err := json.Marshal(NewCart())
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}

func TestItemUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "given unknown kind should fail",
			data: `{"id":"6f1c1c40-5c1a-4d43-9a57-0b7b2a3d8f10","kind":"flight"}`,
		},
		{
			name: "given two payloads should fail",
			data: `{"id":"6f1c1c40-5c1a-4d43-9a57-0b7b2a3d8f10","kind":"food",
				"food":{"menuItem":{"name":"Tea","price":"10"},"orderDetails":{"deliveryOption":"dine-in"}},
				"accommodation":{"accommodation":{"name":"Villa A","pricePerNight":"1"},
					"selectedDates":{"checkIn":"2024-03-20T00:00:00Z","checkOut":"2024-03-21T00:00:00Z"}}}`,
		},
		{
			name: "given kind without its payload should fail",
			data: `{"id":"6f1c1c40-5c1a-4d43-9a57-0b7b2a3d8f10","kind":"experience",
				"food":{"menuItem":{"name":"Tea","price":"10"},"orderDetails":{"deliveryOption":"dine-in"}}}`,
		},
		{
			name: "given experience without slot should fail",
			data: `{"id":"6f1c1c40-5c1a-4d43-9a57-0b7b2a3d8f10","kind":"experience",
				"experience":{"experience":{"name":"Palm Hat Workshop","price":"300000"}}}`,
		},
		{
			name: "given missing id should fail",
			data: `{"kind":"food","food":{"menuItem":{"name":"Tea","price":"10"},"orderDetails":{"deliveryOption":"dine-in"}}}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			item := Item{}
			err := json.Unmarshal([]byte(test.data), &item)
			assert.True(t, errors.Is(err, ErrMalformedItem), "got %v", err)
		})
	}
}

func TestCartUnmarshalRejectsBrokenCart(t *testing.T) {
	const (
		palm  = `"experience":{"experience":{"name":"Palm Hat Workshop","price":"300000"},"selectedSlot":{"date":"2024-03-20","startTime":"10:00","endTime":"12:00"}}`
		glass = `"experience":{"experience":{"name":"Glass Blowing Experience","price":"450000"},"selectedSlot":{"date":"2024-03-20","startTime":"11:00","endTime":"13:00"}}`
		later = `"experience":{"experience":{"name":"Glass Blowing Experience","price":"450000"},"selectedSlot":{"date":"2024-03-20","startTime":"12:00","endTime":"13:00"}}`
		villa = `"accommodation":{"accommodation":{"name":"Villa A","pricePerNight":"500000"},"selectedDates":{"checkIn":"2024-03-20T00:00:00Z","checkOut":"2024-03-22T00:00:00Z"}}`
		idA   = `"id":"6f1c1c40-5c1a-4d43-9a57-0b7b2a3d8f10"`
		idB   = `"id":"0b6a1b8e-2f57-4c4e-9d7e-3c1f6d2a9b41"`
	)
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "given overlapping experiences should fail",
			data:    `{"items":[{` + idA + `,"kind":"experience",` + palm + `},{` + idB + `,"kind":"experience",` + glass + `}]}`,
			wantErr: true,
		},
		{
			name:    "given repeated item id should fail",
			data:    `{"items":[{` + idA + `,"kind":"experience",` + palm + `},{` + idA + `,"kind":"experience",` + later + `}]}`,
			wantErr: true,
		},
		{
			name:    "given same accommodation twice should fail",
			data:    `{"items":[{` + idA + `,"kind":"accommodation",` + villa + `},{` + idB + `,"kind":"accommodation",` + villa + `}]}`,
			wantErr: true,
		},
		{
			name: "given adjacent experiences with distinct ids should decode",
			data: `{"items":[{` + idA + `,"kind":"experience",` + palm + `},{` + idB + `,"kind":"experience",` + later + `}]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cart := NewCart()
			err := json.Unmarshal([]byte(test.data), cart)
			if !test.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 2, cart.Len())
				return
			}
			assert.True(t, errors.Is(err, ErrMalformedItem), "got %v", err)
			assert.Equal(t, 0, cart.Len())
		})
	}
}

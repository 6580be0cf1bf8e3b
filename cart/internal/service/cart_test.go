package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/journey/cart/internal/store"
	"github.com/Alturino/journey/cart/pkg/journey"
	"github.com/Alturino/journey/cart/pkg/request"
	catalogRes "github.com/Alturino/journey/catalog/pkg/response"
	inErrors "github.com/Alturino/journey/internal/errors"
)

type fakeCatalog struct {
	experiences    map[uuid.UUID]catalogRes.Experience
	accommodations map[uuid.UUID]catalogRes.Accommodation
	menuItems      map[uuid.UUID]catalogRes.MenuItem
}

func (f fakeCatalog) FindExperienceById(_ context.Context, id uuid.UUID) (catalogRes.Experience, error) {
	if e, ok := f.experiences[id]; ok {
		return e, nil
	}
	return catalogRes.Experience{}, inErrors.ErrNotFound
}

func (f fakeCatalog) FindAccommodationById(_ context.Context, id uuid.UUID) (catalogRes.Accommodation, error) {
	if a, ok := f.accommodations[id]; ok {
		return a, nil
	}
	return catalogRes.Accommodation{}, inErrors.ErrNotFound
}

func (f fakeCatalog) FindMenuItemById(_ context.Context, id uuid.UUID) (catalogRes.MenuItem, error) {
	if m, ok := f.menuItems[id]; ok {
		return m, nil
	}
	return catalogRes.MenuItem{}, inErrors.ErrNotFound
}

var (
	palmHat = catalogRes.Experience{
		ID: uuid.New(), Name: "Palm Hat Workshop", IsPaid: true, Price: decimal.NewFromInt(300000), IsVisible: true,
		Slots: []catalogRes.Slot{
			{ID: uuid.New(), Date: "2024-03-20", StartTime: "10:00", EndTime: "12:00", Available: true},
			{ID: uuid.New(), Date: "2024-03-20", StartTime: "14:00", EndTime: "16:00", Available: false},
		},
	}
	glass = catalogRes.Experience{
		ID: uuid.New(), Name: "Glass Blowing Experience", IsPaid: true, Price: decimal.NewFromInt(450000), IsVisible: true,
		Slots: []catalogRes.Slot{
			{ID: uuid.New(), Date: "2024-03-20", StartTime: "11:00", EndTime: "13:00", Available: true},
		},
	}
	yoga = catalogRes.Experience{
		ID: uuid.New(), Name: "Beach Yoga", IsPaid: false, Price: decimal.NewFromInt(99), IsVisible: true,
		Slots: []catalogRes.Slot{
			{ID: uuid.New(), Date: "2024-03-21", StartTime: "07:00", EndTime: "08:00", Available: true},
		},
	}
	villa   = catalogRes.Accommodation{ID: uuid.New(), Name: "Villa A", PricePerNight: decimal.NewFromInt(500000)}
	bunk    = catalogRes.Accommodation{ID: uuid.New(), Name: "Bunk House", PricePerNight: decimal.NewFromInt(80000), IsFullyBooked: true}
	nasi    = catalogRes.MenuItem{ID: uuid.New(), Name: "Nasi Goreng", Price: decimal.NewFromInt(65000), IsAvailable: true}
	lobster = catalogRes.MenuItem{ID: uuid.New(), Name: "Lobster", Price: decimal.NewFromInt(900000), IsAvailable: false}

	checkIn = time.Date(2024, time.March, 20, 14, 0, 0, 0, time.UTC)
)

func newService(t *testing.T) CartService {
	t.Helper()
	svc, err := NewCartService(store.NewMemoryStore(time.Hour), fakeCatalog{
		experiences:    map[uuid.UUID]catalogRes.Experience{palmHat.ID: palmHat, glass.ID: glass, yoga.ID: yoga},
		accommodations: map[uuid.UUID]catalogRes.Accommodation{villa.ID: villa, bunk.ID: bunk},
		menuItems:      map[uuid.UUID]catalogRes.MenuItem{nasi.ID: nasi, lobster.ID: lobster},
	})
	require.NoError(t, err)
	return svc
}

func experienceReq(e catalogRes.Experience, slot catalogRes.Slot) request.AddItem {
	return request.AddItem{
		Kind:     "experience",
		EntityID: e.ID,
		Slot:     &request.Slot{Date: slot.Date, StartTime: slot.StartTime, EndTime: slot.EndTime},
	}
}

func stayReq(a catalogRes.Accommodation, nights int) request.AddItem {
	return request.AddItem{
		Kind:     "accommodation",
		EntityID: a.ID,
		Dates:    &journey.StayDates{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, nights)},
	}
}

func foodReq(m catalogRes.MenuItem) request.AddItem {
	return request.AddItem{
		Kind:         "food",
		EntityID:     m.ID,
		OrderDetails: &journey.OrderDetails{DeliveryOption: journey.DineIn},
	}
}

func TestCartServiceAddItem(t *testing.T) {
	c := context.Background()

	t.Run("given experience and stay should total 1800000", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()

		res, err := svc.AddItem(c, sessionID, experienceReq(palmHat, palmHat.Slots[0]))
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.NotEmpty(t, res.ItemID)

		res, err = svc.AddItem(c, sessionID, stayReq(villa, 3))
		require.NoError(t, err)
		assert.Equal(t, "appended", res.Outcome)
		assert.Equal(t, 2, res.Cart.ItemCount)
		assert.True(t, decimal.NewFromInt(1800000).Equal(res.Cart.Total), "got %s", res.Cart.Total)
	})

	t.Run("given overlapping experience should be rejected with conflict message", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()
		_, err := svc.AddItem(c, sessionID, experienceReq(palmHat, palmHat.Slots[0]))
		require.NoError(t, err)

		res, err := svc.AddItem(c, sessionID, experienceReq(glass, glass.Slots[0]))

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "rejected", res.Outcome)
		assert.Contains(t, res.Message, "Palm Hat Workshop")
		assert.Empty(t, res.ItemID)
		assert.Equal(t, 1, res.Cart.ItemCount)
	})

	t.Run("given same accommodation twice should replace the booking", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()
		_, err := svc.AddItem(c, sessionID, stayReq(villa, 2))
		require.NoError(t, err)

		res, err := svc.AddItem(c, sessionID, stayReq(villa, 4))

		require.NoError(t, err)
		assert.Equal(t, "replaced", res.Outcome)
		assert.Equal(t, 1, res.Cart.ItemCount)
		assert.True(t, decimal.NewFromInt(2000000).Equal(res.Cart.Total))
	})

	t.Run("given unpaid experience should cost nothing", func(t *testing.T) {
		svc := newService(t)
		res, err := svc.AddItem(c, uuid.New(), experienceReq(yoga, yoga.Slots[0]))
		require.NoError(t, err)
		assert.True(t, res.Cart.Total.IsZero())
	})

	t.Run("given referral code should be kept on the item", func(t *testing.T) {
		svc := newService(t)
		req := foodReq(nasi)
		req.ReferralCode = "GUIDE42"

		res, err := svc.AddItem(c, uuid.New(), req)

		require.NoError(t, err)
		require.Len(t, res.Cart.Items, 1)
		assert.Equal(t, "GUIDE42", res.Cart.Items[0].ReferralCode())
	})

	errorTests := []struct {
		name     string
		req      request.AddItem
		expected error
	}{
		{name: "given slot not offered should fail", req: experienceReq(palmHat, catalogRes.Slot{Date: "2024-03-22", StartTime: "10:00", EndTime: "12:00"}), expected: inErrors.ErrSlotUnavailable},
		{name: "given unavailable slot should fail", req: experienceReq(palmHat, palmHat.Slots[1]), expected: inErrors.ErrSlotUnavailable},
		{name: "given fully booked accommodation should fail", req: stayReq(bunk, 1), expected: inErrors.ErrFullyBooked},
		{name: "given unavailable menu item should fail", req: foodReq(lobster), expected: inErrors.ErrItemUnavailable},
		{name: "given unknown entity should fail", req: foodReq(catalogRes.MenuItem{ID: uuid.New()}), expected: inErrors.ErrNotFound},
		{name: "given reversed stay should be malformed", req: request.AddItem{Kind: "accommodation", EntityID: villa.ID, Dates: &journey.StayDates{CheckIn: checkIn, CheckOut: checkIn.Add(-time.Hour)}}, expected: journey.ErrMalformedItem},
		{name: "given experience without slot should be malformed", req: request.AddItem{Kind: "experience", EntityID: palmHat.ID}, expected: journey.ErrMalformedItem},
	}
	for _, test := range errorTests {
		t.Run(test.name, func(t *testing.T) {
			svc := newService(t)
			sessionID := uuid.New()

			_, err := svc.AddItem(c, sessionID, test.req)

			assert.True(t, errors.Is(err, test.expected), "got %v", err)
			cart, err := svc.GetCart(c, sessionID)
			require.NoError(t, err)
			assert.Equal(t, 0, cart.ItemCount)
		})
	}
}

func TestCartServiceCheckConflict(t *testing.T) {
	c := context.Background()
	svc := newService(t)
	sessionID := uuid.New()
	_, err := svc.AddItem(c, sessionID, experienceReq(palmHat, palmHat.Slots[0]))
	require.NoError(t, err)

	conflict, err := svc.CheckConflict(c, sessionID, request.CheckConflict{Slot: request.Slot{Date: "2024-03-20", StartTime: "11:30", EndTime: "12:30"}})
	require.NoError(t, err)
	assert.True(t, conflict.HasConflict)
	assert.Equal(t, "Palm Hat Workshop", conflict.ItemName)
	assert.Equal(t, journey.ConflictMessage("Palm Hat Workshop"), conflict.Message)
	require.NotNil(t, conflict.ItemID)
	assert.NotEqual(t, uuid.Nil, *conflict.ItemID)

	conflict, err = svc.CheckConflict(c, sessionID, request.CheckConflict{Slot: request.Slot{Date: "2024-03-20", StartTime: "12:00", EndTime: "13:00"}})
	require.NoError(t, err)
	assert.False(t, conflict.HasConflict)
	assert.Nil(t, conflict.ItemID)

	_, err = svc.CheckConflict(c, sessionID, request.CheckConflict{Slot: request.Slot{Date: "2024-03-20", StartTime: "13:00", EndTime: "12:00"}})
	assert.True(t, errors.Is(err, journey.ErrMalformedItem))
}

func TestCartServiceRemove(t *testing.T) {
	c := context.Background()

	t.Run("given item id should remove once", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()
		res, err := svc.AddItem(c, sessionID, foodReq(nasi))
		require.NoError(t, err)
		itemID := uuid.MustParse(res.ItemID)

		removal, err := svc.RemoveItem(c, sessionID, itemID)
		require.NoError(t, err)
		assert.Equal(t, 1, removal.Removed)
		assert.Equal(t, 0, removal.Cart.ItemCount)

		removal, err = svc.RemoveItem(c, sessionID, itemID)
		require.NoError(t, err)
		assert.Equal(t, 0, removal.Removed)
	})

	t.Run("given name should remove bookings but keep food", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()
		_, err := svc.AddItem(c, sessionID, stayReq(villa, 1))
		require.NoError(t, err)
		_, err = svc.AddItem(c, sessionID, foodReq(nasi))
		require.NoError(t, err)

		removal, err := svc.RemoveByName(c, sessionID, "Villa A")
		require.NoError(t, err)
		assert.Equal(t, 1, removal.Removed)
		assert.Equal(t, 1, removal.Cart.ItemCount)

		removal, err = svc.RemoveByName(c, sessionID, "Nasi Goreng")
		require.NoError(t, err)
		assert.Equal(t, 0, removal.Removed)
	})

	t.Run("given deleted cart should read empty", func(t *testing.T) {
		svc := newService(t)
		sessionID := uuid.New()
		_, err := svc.AddItem(c, sessionID, foodReq(nasi))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCart(c, sessionID))

		cart, err := svc.GetCart(c, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 0, cart.ItemCount)
		assert.True(t, cart.Total.IsZero())
	})
}

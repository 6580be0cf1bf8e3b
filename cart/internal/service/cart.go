package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/journey/cart/internal/otel"
	"github.com/Alturino/journey/cart/internal/store"
	"github.com/Alturino/journey/cart/pkg/journey"
	"github.com/Alturino/journey/cart/pkg/request"
	"github.com/Alturino/journey/cart/pkg/response"
	catalogRes "github.com/Alturino/journey/catalog/pkg/response"
	"github.com/Alturino/journey/internal/constants"
	inOtel "github.com/Alturino/journey/internal/otel"
)

type Catalog interface {
	FindExperienceById(c context.Context, id uuid.UUID) (catalogRes.Experience, error)
	FindAccommodationById(c context.Context, id uuid.UUID) (catalogRes.Accommodation, error)
	FindMenuItemById(c context.Context, id uuid.UUID) (catalogRes.MenuItem, error)
}

type CartService struct {
	store   store.Store
	catalog Catalog

	itemsAdded        metric.Int64Counter
	conflictsRejected metric.Int64Counter
}

func NewCartService(store store.Store, catalog Catalog) (CartService, error) {
	itemsAdded, err := otel.Meter.Int64Counter(
		"journey.cart.items_added",
		metric.WithDescription("items appended to or replaced in a cart"),
	)
	if err != nil {
		return CartService{}, fmt.Errorf("failed creating items added counter with error=%w", err)
	}
	conflictsRejected, err := otel.Meter.Int64Counter(
		"journey.cart.conflicts_rejected",
		metric.WithDescription("experience bookings rejected for overlapping another booking"),
	)
	if err != nil {
		return CartService{}, fmt.Errorf("failed creating conflicts rejected counter with error=%w", err)
	}
	return CartService{
		store:             store,
		catalog:           catalog,
		itemsAdded:        itemsAdded,
		conflictsRejected: conflictsRejected,
	}, nil
}

func (svc CartService) GetCart(c context.Context, sessionID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService GetCart").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Logger()

	logger.Trace().Msg("loading cart")
	cart, err := svc.store.Load(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Debug().Int(constants.KEY_CART_ITEMS_COUNT, cart.Len()).Msg("loaded cart")
	return response.NewCart(sessionID, cart), nil
}

func (svc CartService) AddItem(
	c context.Context,
	sessionID uuid.UUID,
	param request.AddItem,
) (response.AddItem, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService AddItem").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Str(constants.KEY_CATALOG_KIND, param.Kind).
		Str(constants.KEY_ENTITY_ID, param.EntityID.String()).
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(constants.KEY_PROCESS, "resolving catalog entry").Logger()
	logger.Trace().Msg("resolving catalog entry")
	span.AddEvent("resolving catalog entry")
	item, err := svc.resolve(c, param)
	if err != nil {
		err = fmt.Errorf("failed resolving catalog entry with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.AddItem{}, err
	}
	logger = logger.With().Str(constants.KEY_CART_ITEM_ID, item.ID().String()).Logger()
	logger.Debug().Msg("resolved catalog entry")

	logger = logger.With().Str(constants.KEY_PROCESS, "adding item to cart").Logger()
	logger.Trace().Msg("adding item to cart")
	span.AddEvent("adding item to cart")
	var result journey.AddResult
	cart, err := svc.store.Update(c, sessionID, func(cart *journey.Cart) error {
		added, err := cart.Add(item)
		result = added
		return err
	})
	if err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.AddItem{}, err
	}

	kind := attribute.String(constants.KEY_CATALOG_KIND, item.Kind().String())
	switch result.Outcome {
	case journey.Appended, journey.Replaced:
		svc.itemsAdded.Add(c, 1, metric.WithAttributes(kind, attribute.String(constants.KEY_CART_OUTCOME, result.Outcome.String())))
	case journey.Rejected:
		svc.conflictsRejected.Add(c, 1)
	}
	span.SetAttributes(attribute.String(constants.KEY_CART_OUTCOME, result.Outcome.String()))
	logger.Info().
		Str(constants.KEY_CART_OUTCOME, result.Outcome.String()).
		Int(constants.KEY_CART_ITEMS_COUNT, cart.Len()).
		Msg("added item to cart")

	res := response.AddItem{
		Success: result.Success,
		Message: result.Message,
		Outcome: result.Outcome.String(),
		Cart:    response.NewCart(sessionID, cart),
	}
	if result.Outcome == journey.Appended || result.Outcome == journey.Replaced {
		res.ItemID = item.ID().String()
	}
	return res, nil
}

func (svc CartService) CheckConflict(
	c context.Context,
	sessionID uuid.UUID,
	param request.CheckConflict,
) (response.Conflict, error) {
	c, span := otel.Tracer.Start(c, "CartService CheckConflict")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService CheckConflict").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Logger()

	cart, err := svc.store.Load(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Conflict{}, err
	}

	conflict, err := cart.HasTimeConflict(param.Slot.TimeSlot())
	if err != nil {
		err = fmt.Errorf("failed checking conflict with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Conflict{}, err
	}

	res := response.Conflict{HasConflict: conflict.HasConflict}
	if conflict.HasConflict {
		res.ItemName = conflict.ItemName
		itemID := conflict.ItemID
		res.ItemID = &itemID
		res.Message = journey.ConflictMessage(conflict.ItemName)
	}
	logger.Debug().Bool("hasConflict", conflict.HasConflict).Msg("checked conflict")
	return res, nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	sessionID uuid.UUID,
	itemID uuid.UUID,
) (response.Removal, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService RemoveItem").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Str(constants.KEY_CART_ITEM_ID, itemID.String()).
		Logger()

	removed := 0
	cart, err := svc.store.Update(c, sessionID, func(cart *journey.Cart) error {
		removed = 0
		if cart.RemoveItem(itemID) {
			removed = 1
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Removal{}, err
	}
	logger.Info().Int("removed", removed).Msg("removed item from cart")
	return response.Removal{Removed: removed, Cart: response.NewCart(sessionID, cart)}, nil
}

// RemoveByName drops every experience and accommodation carrying name.
// Food orders are only removable by id.
func (svc CartService) RemoveByName(
	c context.Context,
	sessionID uuid.UUID,
	name string,
) (response.Removal, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveByName")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService RemoveByName").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Logger()

	removed := 0
	cart, err := svc.store.Update(c, sessionID, func(cart *journey.Cart) error {
		removed = cart.Remove(name)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed removing items by name with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Removal{}, err
	}
	logger.Info().Int("removed", removed).Msg("removed items from cart")
	return response.Removal{Removed: removed, Cart: response.NewCart(sessionID, cart)}, nil
}

func (svc CartService) DeleteCart(c context.Context, sessionID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService DeleteCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CartService DeleteCart").
		Str(constants.KEY_SESSION_ID, sessionID.String()).
		Logger()

	if err := svc.store.Delete(c, sessionID); err != nil {
		err = fmt.Errorf("failed deleting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted cart")
	return nil
}

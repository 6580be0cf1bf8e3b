package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/catalog/internal/cache"
	"github.com/Alturino/journey/catalog/internal/otel"
	"github.com/Alturino/journey/catalog/internal/repository"
	"github.com/Alturino/journey/catalog/pkg/request"
	"github.com/Alturino/journey/catalog/pkg/response"
	"github.com/Alturino/journey/catalog/pkg/subscription"
	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	inOtel "github.com/Alturino/journey/internal/otel"
)

func (svc CatalogService) InsertMenuItem(
	c context.Context,
	principal auth.Principal,
	param request.InsertMenuItem,
) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService InsertMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService InsertMenuItem").
		Str(constants.KEY_CATALOG_KIND, string(subscription.KindMenuItem)).
		Logger()

	if err := authorize(principal, auth.ResourceMenuItem); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting menu item to database").Logger()
	logger.Trace().Msg("inserting menu item to database")
	span.AddEvent("inserting menu item to database")
	menuItem, err := svc.queries.InsertMenuItem(c, repository.InsertMenuItemParams{
		ID:          uuid.New(),
		Name:        param.Name,
		Description: param.Description,
		Venue:       param.Venue,
		Price:       repository.NumericFromDecimal(param.Price),
		IsAvailable: param.IsAvailable,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting menu item with error=%w", translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	span.AddEvent("inserted menu item to database")
	logger = logger.With().Str(constants.KEY_ENTITY_ID, menuItem.ID.String()).Logger()
	logger.Info().Msg("inserted menu item to database")

	result := menuItem.Response()
	cacheKey := cache.KEY_MENU_ITEMS + menuItem.ID.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindMenuItem,
		ID:   menuItem.ID,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)
	return result, nil
}

func (svc CatalogService) FindMenuItemById(
	c context.Context,
	id uuid.UUID,
) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindMenuItemById")
	defer span.End()

	cacheKey := cache.KEY_MENU_ITEMS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService FindMenuItemById").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()
	c = logger.WithContext(c)

	if result, found := getFromCache[response.MenuItem](c, svc.cache, cacheKey); found {
		span.AddEvent("found menu item in cache")
		logger.Debug().Msg("found menu item in cache")
		return result, nil
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding menu item in database").Logger()
	logger.Trace().Msg("finding menu item in database")
	menuItem, err := svc.queries.FindMenuItemById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding menu item id=%s with error=%w", id, translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	result := menuItem.Response()
	logger.Info().Msg("found menu item in database")
	svc.storeInCache(c, cacheKey, result)
	return result, nil
}

func (svc CatalogService) ListMenuItems(
	c context.Context,
	param request.ListMenuItems,
) ([]response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService ListMenuItems").
		Str(constants.KEY_PROCESS, "listing menu items in database").
		Logger()

	menuItems, err := svc.queries.ListMenuItems(c, param.Venue)
	if err != nil {
		err = fmt.Errorf("failed listing menu items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	result := make([]response.MenuItem, 0, len(menuItems))
	for _, menuItem := range menuItems {
		result = append(result, menuItem.Response())
	}
	logger.Info().Msgf("found %d menu items", len(result))
	return result, nil
}

func (svc CatalogService) UpdateMenuItem(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
	param request.UpdateMenuItem,
) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService UpdateMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService UpdateMenuItem").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	if err := authorize(principal, auth.ResourceMenuItem); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating menu item in database").Logger()
	logger.Trace().Msg("updating menu item in database")
	span.AddEvent("updating menu item in database")
	menuItem, err := svc.queries.UpdateMenuItem(c, repository.UpdateMenuItemParams{
		ID:          id,
		Name:        param.Name,
		Description: param.Description,
		Venue:       param.Venue,
		Price:       repository.NumericFromDecimal(param.Price),
		IsAvailable: param.IsAvailable,
	})
	if err != nil {
		err = fmt.Errorf("failed updating menu item id=%s with error=%w", id, translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	span.AddEvent("updated menu item in database")

	result := menuItem.Response()
	cacheKey := cache.KEY_MENU_ITEMS + id.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindMenuItem,
		ID:   id,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)

	logger.Info().Msg("updated menu item")
	return result, nil
}

func (svc CatalogService) DeleteMenuItem(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "CatalogService DeleteMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService DeleteMenuItem").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	if err := authorize(principal, auth.ResourceMenuItem); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}

	deleted, err := svc.queries.DeleteMenuItem(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting menu item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = fmt.Errorf("failed deleting menu item id=%s with error=%w", id, inErrors.ErrNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return err
	}

	svc.announce(logger.WithContext(c), cache.KEY_MENU_ITEMS+id.String(), subscription.Change{
		Kind: subscription.KindMenuItem,
		ID:   id,
		Op:   subscription.OpDelete,
	})
	logger.Info().Msg("deleted menu item")
	return nil
}

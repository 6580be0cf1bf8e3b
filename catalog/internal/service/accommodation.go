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

func (svc CatalogService) InsertAccommodation(
	c context.Context,
	principal auth.Principal,
	param request.InsertAccommodation,
) (response.Accommodation, error) {
	c, span := otel.Tracer.Start(c, "CatalogService InsertAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService InsertAccommodation").
		Str(constants.KEY_CATALOG_KIND, string(subscription.KindAccommodation)).
		Logger()

	if err := authorize(principal, auth.ResourceAccommodation); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Accommodation{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting accommodation to database").Logger()
	logger.Trace().Msg("inserting accommodation to database")
	span.AddEvent("inserting accommodation to database")
	amenities := param.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	accommodation, err := svc.queries.InsertAccommodation(c, repository.InsertAccommodationParams{
		ID:            uuid.New(),
		Name:          param.Name,
		Description:   param.Description,
		Category:      param.Category,
		ImageUrl:      param.ImageURL,
		PricePerNight: repository.NumericFromDecimal(param.PricePerNight),
		Amenities:     amenities,
		IsFullyBooked: param.IsFullyBooked,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting accommodation with error=%w", translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Accommodation{}, err
	}
	span.AddEvent("inserted accommodation to database")
	logger = logger.With().Str(constants.KEY_ENTITY_ID, accommodation.ID.String()).Logger()
	logger.Info().Msg("inserted accommodation to database")

	result := accommodation.Response()
	cacheKey := cache.KEY_ACCOMMODATIONS + accommodation.ID.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindAccommodation,
		ID:   accommodation.ID,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)
	return result, nil
}

func (svc CatalogService) FindAccommodationById(
	c context.Context,
	id uuid.UUID,
) (response.Accommodation, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindAccommodationById")
	defer span.End()

	cacheKey := cache.KEY_ACCOMMODATIONS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService FindAccommodationById").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()
	c = logger.WithContext(c)

	logger.Trace().Msg("finding accommodation in cache")
	if result, found := getFromCache[response.Accommodation](c, svc.cache, cacheKey); found {
		span.AddEvent("found accommodation in cache")
		logger.Debug().Msg("found accommodation in cache")
		return result, nil
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding accommodation in database").Logger()
	logger.Trace().Msg("finding accommodation in database")
	span.AddEvent("finding accommodation in database")
	accommodation, err := svc.queries.FindAccommodationById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding accommodation id=%s with error=%w", id, translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Accommodation{}, err
	}
	result := accommodation.Response()
	logger.Info().Msg("found accommodation in database")
	svc.storeInCache(c, cacheKey, result)
	return result, nil
}

func (svc CatalogService) ListAccommodations(
	c context.Context,
	param request.ListAccommodations,
) ([]response.Accommodation, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListAccommodations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService ListAccommodations").
		Str(constants.KEY_PROCESS, "listing accommodations in database").
		Logger()

	logger.Trace().Msg("listing accommodations in database")
	accommodations, err := svc.queries.ListAccommodations(c, param.Category)
	if err != nil {
		err = fmt.Errorf("failed listing accommodations with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	result := make([]response.Accommodation, 0, len(accommodations))
	for _, accommodation := range accommodations {
		result = append(result, accommodation.Response())
	}
	logger.Info().Msgf("found %d accommodations", len(result))
	return result, nil
}

func (svc CatalogService) UpdateAccommodation(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
	param request.UpdateAccommodation,
) (response.Accommodation, error) {
	c, span := otel.Tracer.Start(c, "CatalogService UpdateAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService UpdateAccommodation").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	if err := authorize(principal, auth.ResourceAccommodation); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Accommodation{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating accommodation in database").Logger()
	logger.Trace().Msg("updating accommodation in database")
	span.AddEvent("updating accommodation in database")
	amenities := param.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	accommodation, err := svc.queries.UpdateAccommodation(c, repository.UpdateAccommodationParams{
		ID:            id,
		Name:          param.Name,
		Description:   param.Description,
		Category:      param.Category,
		ImageUrl:      param.ImageURL,
		PricePerNight: repository.NumericFromDecimal(param.PricePerNight),
		Amenities:     amenities,
		IsFullyBooked: param.IsFullyBooked,
	})
	if err != nil {
		err = fmt.Errorf("failed updating accommodation id=%s with error=%w", id, translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Accommodation{}, err
	}
	span.AddEvent("updated accommodation in database")

	result := accommodation.Response()
	cacheKey := cache.KEY_ACCOMMODATIONS + id.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindAccommodation,
		ID:   id,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)

	logger.Info().Msg("updated accommodation")
	return result, nil
}

func (svc CatalogService) DeleteAccommodation(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "CatalogService DeleteAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService DeleteAccommodation").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	if err := authorize(principal, auth.ResourceAccommodation); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "deleting accommodation in database").Logger()
	logger.Trace().Msg("deleting accommodation in database")
	deleted, err := svc.queries.DeleteAccommodation(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting accommodation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = fmt.Errorf("failed deleting accommodation id=%s with error=%w", id, inErrors.ErrNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return err
	}

	svc.announce(logger.WithContext(c), cache.KEY_ACCOMMODATIONS+id.String(), subscription.Change{
		Kind: subscription.KindAccommodation,
		ID:   id,
		Op:   subscription.OpDelete,
	})
	logger.Info().Msg("deleted accommodation")
	return nil
}

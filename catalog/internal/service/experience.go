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

func (svc CatalogService) InsertExperience(
	c context.Context,
	principal auth.Principal,
	param request.InsertExperience,
) (response.Experience, error) {
	c, span := otel.Tracer.Start(c, "CatalogService InsertExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService InsertExperience").
		Str(constants.KEY_CATALOG_KIND, string(subscription.KindExperience)).
		Logger()

	if err := authorize(principal, auth.ResourceExperience); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "beginning transaction").Logger()
	logger.Trace().Msg("beginning transaction")
	tx, err := svc.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed beginning transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	defer tx.Rollback(c)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting experience to database").Logger()
	logger.Trace().Msg("inserting experience to database")
	span.AddEvent("inserting experience to database")
	experience, err := queries.InsertExperience(c, repository.InsertExperienceParams{
		ID:          uuid.New(),
		Name:        param.Name,
		Description: param.Description,
		Category:    param.Category,
		IsPaid:      param.IsPaid,
		Price:       repository.NumericFromDecimal(param.Price),
		ImageUrl:    param.ImageURL,
		IsVisible:   param.IsVisible,
		CreatedBy:   principal.UserID,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting experience with error=%w", translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	logger = logger.With().Str(constants.KEY_ENTITY_ID, experience.ID.String()).Logger()
	logger.Info().Msg("inserted experience to database")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting experience slots to database").Logger()
	logger.Trace().Msg("inserting experience slots to database")
	for _, slot := range param.Slots {
		err = queries.InsertExperienceSlot(c, repository.InsertExperienceSlotParams{
			ID:           uuid.New(),
			ExperienceID: experience.ID,
			SlotDate:     slot.Date,
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
			Available:    slot.Available,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting experience slot with error=%w", translateError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Experience{}, err
		}
	}
	slots, err := queries.FindSlotsByExperienceIds(c, []uuid.UUID{experience.ID})
	if err != nil {
		err = fmt.Errorf("failed finding experience slots with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	logger.Info().Msgf("inserted %d experience slots to database", len(slots))

	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	span.AddEvent("inserted experience to database")

	result := experience.Response(slots)
	cacheKey := cache.KEY_EXPERIENCES + experience.ID.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindExperience,
		ID:   experience.ID,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)

	logger.Info().Msg("inserted experience")
	return result, nil
}

// FindExperienceById hides invisible experiences behind ErrNotFound.
func (svc CatalogService) FindExperienceById(
	c context.Context,
	id uuid.UUID,
) (response.Experience, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindExperienceById")
	defer span.End()

	cacheKey := cache.KEY_EXPERIENCES + id.String()
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService FindExperienceById").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(constants.KEY_PROCESS, "finding experience in cache").Logger()
	logger.Trace().Msg("finding experience in cache")
	result, found := getFromCache[response.Experience](c, svc.cache, cacheKey)
	if found {
		span.AddEvent("found experience in cache")
		logger.Debug().Msg("found experience in cache")
	} else {
		logger = logger.With().Str(constants.KEY_PROCESS, "finding experience in database").Logger()
		logger.Trace().Msg("finding experience in database")
		span.AddEvent("finding experience in database")
		experience, err := svc.queries.FindExperienceById(c, id)
		if err != nil {
			err = fmt.Errorf("failed finding experience id=%s with error=%w", id, translateError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Experience{}, err
		}
		slots, err := svc.queries.FindSlotsByExperienceIds(c, []uuid.UUID{id})
		if err != nil {
			err = fmt.Errorf("failed finding experience slots with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Experience{}, err
		}
		result = experience.Response(slots)
		logger.Info().Msg("found experience in database")
		svc.storeInCache(c, cacheKey, result)
	}

	if !result.IsVisible {
		err := fmt.Errorf("experience id=%s is hidden with error=%w", id, inErrors.ErrNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	return result, nil
}

func (svc CatalogService) ListExperiences(
	c context.Context,
	param request.ListExperiences,
) ([]response.Experience, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListExperiences")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService ListExperiences").
		Str(constants.KEY_PROCESS, "listing experiences in database").
		Logger()

	logger.Trace().Msg("listing experiences in database")
	experiences, err := svc.queries.ListExperiences(c, param.Category)
	if err != nil {
		err = fmt.Errorf("failed listing experiences with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(experiences))
	for _, experience := range experiences {
		ids = append(ids, experience.ID)
	}
	slots, err := svc.queries.FindSlotsByExperienceIds(c, ids)
	if err != nil {
		err = fmt.Errorf("failed finding experience slots with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	result := make([]response.Experience, 0, len(experiences))
	for _, experience := range experiences {
		result = append(result, experience.Response(slots))
	}
	logger.Info().Msgf("found %d experiences", len(result))
	return result, nil
}

// ownedExperience loads experience id and checks principal may edit it.
func (svc CatalogService) ownedExperience(
	c context.Context,
	queries *repository.Queries,
	principal auth.Principal,
	id uuid.UUID,
) (repository.Experience, error) {
	if err := authorize(principal, auth.ResourceExperience); err != nil {
		return repository.Experience{}, err
	}
	experience, err := queries.FindExperienceById(c, id)
	if err != nil {
		return repository.Experience{}, fmt.Errorf("failed finding experience id=%s with error=%w", id, translateError(err))
	}
	if err := authorizeOwner(principal, experience.CreatedBy); err != nil {
		return repository.Experience{}, err
	}
	return experience, nil
}

func (svc CatalogService) UpdateExperience(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
	param request.UpdateExperience,
) (response.Experience, error) {
	c, span := otel.Tracer.Start(c, "CatalogService UpdateExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService UpdateExperience").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "beginning transaction").Logger()
	logger.Trace().Msg("beginning transaction")
	tx, err := svc.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed beginning transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	defer tx.Rollback(c)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(constants.KEY_PROCESS, "authorizing experience owner").Logger()
	if _, err := svc.ownedExperience(c, queries, principal, id); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating experience in database").Logger()
	logger.Trace().Msg("updating experience in database")
	span.AddEvent("updating experience in database")
	experience, err := queries.UpdateExperience(c, repository.UpdateExperienceParams{
		ID:          id,
		Name:        param.Name,
		Description: param.Description,
		Category:    param.Category,
		IsPaid:      param.IsPaid,
		Price:       repository.NumericFromDecimal(param.Price),
		ImageUrl:    param.ImageURL,
		IsVisible:   param.IsVisible,
	})
	if err != nil {
		err = fmt.Errorf("failed updating experience with error=%w", translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	slots, err := queries.FindSlotsByExperienceIds(c, []uuid.UUID{id})
	if err != nil {
		err = fmt.Errorf("failed finding experience slots with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	span.AddEvent("updated experience in database")

	result := experience.Response(slots)
	cacheKey := cache.KEY_EXPERIENCES + id.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindExperience,
		ID:   id,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)

	logger.Info().Msg("updated experience")
	return result, nil
}

// UpdateExperienceSlot rewrites one offered slot, typically to close or
// reopen it.
func (svc CatalogService) UpdateExperienceSlot(
	c context.Context,
	principal auth.Principal,
	experienceID uuid.UUID,
	slotID uuid.UUID,
	param request.UpdateSlot,
) (response.Experience, error) {
	c, span := otel.Tracer.Start(c, "CatalogService UpdateExperienceSlot")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService UpdateExperienceSlot").
		Str(constants.KEY_ENTITY_ID, experienceID.String()).
		Str("slotId", slotID.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "beginning transaction").Logger()
	logger.Trace().Msg("beginning transaction")
	tx, err := svc.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed beginning transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	defer tx.Rollback(c)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(constants.KEY_PROCESS, "authorizing experience owner").Logger()
	experience, err := svc.ownedExperience(c, queries, principal, experienceID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating experience slot in database").Logger()
	logger.Trace().Msg("updating experience slot in database")
	updated, err := queries.UpdateExperienceSlot(c, repository.UpdateExperienceSlotParams{
		ID:           slotID,
		ExperienceID: experienceID,
		SlotDate:     param.Date,
		StartTime:    param.StartTime,
		EndTime:      param.EndTime,
		Available:    param.Available,
	})
	if err != nil {
		err = fmt.Errorf("failed updating experience slot with error=%w", translateError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	if updated == 0 {
		err = fmt.Errorf("failed updating slot id=%s with error=%w", slotID, inErrors.ErrNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	if err := queries.TouchExperience(c, experienceID); err != nil {
		err = fmt.Errorf("failed touching experience with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	slots, err := queries.FindSlotsByExperienceIds(c, []uuid.UUID{experienceID})
	if err != nil {
		err = fmt.Errorf("failed finding experience slots with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Experience{}, err
	}

	result := experience.Response(slots)
	cacheKey := cache.KEY_EXPERIENCES + experienceID.String()
	c = logger.WithContext(c)
	svc.announce(c, cacheKey, subscription.Change{
		Kind: subscription.KindExperience,
		ID:   experienceID,
		Op:   subscription.OpUpsert,
	})
	svc.storeInCache(c, cacheKey, result)

	logger.Info().Bool("available", param.Available).Msg("updated experience slot")
	return result, nil
}

func (svc CatalogService) DeleteExperience(
	c context.Context,
	principal auth.Principal,
	id uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "CatalogService DeleteExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogService DeleteExperience").
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "authorizing experience owner").Logger()
	if _, err := svc.ownedExperience(c, svc.queries, principal, id); err != nil {
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "deleting experience in database").Logger()
	logger.Trace().Msg("deleting experience in database")
	deleted, err := svc.queries.DeleteExperience(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting experience with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = fmt.Errorf("failed deleting experience id=%s with error=%w", id, inErrors.ErrNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return err
	}

	svc.announce(logger.WithContext(c), cache.KEY_EXPERIENCES+id.String(), subscription.Change{
		Kind: subscription.KindExperience,
		ID:   id,
		Op:   subscription.OpDelete,
	})
	logger.Info().Msg("deleted experience")
	return nil
}

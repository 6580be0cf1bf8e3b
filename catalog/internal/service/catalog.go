package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/catalog/internal/repository"
	"github.com/Alturino/journey/catalog/pkg/subscription"
	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
)

const uniqueViolation = "23505"

type CatalogService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	cache     *redis.Client
	publisher subscription.Publisher
	cacheTTL  time.Duration
}

func NewCatalogService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	cacheTTL time.Duration,
) CatalogService {
	return CatalogService{
		pool:      pool,
		queries:   queries,
		cache:     cache,
		publisher: subscription.NewPublisher(cache),
		cacheTTL:  cacheTTL,
	}
}

func authorize(principal auth.Principal, resource auth.Resource) error {
	if !principal.Role.CanManage(resource) {
		return fmt.Errorf("role=%s cannot manage %s with error=%w", principal.Role, resource, inErrors.ErrForbidden)
	}
	return nil
}

// authorizeOwner limits managers to the entries they created. Admins edit
// any entry.
func authorizeOwner(principal auth.Principal, createdBy uuid.UUID) error {
	if principal.Role.IsAdmin() || principal.UserID == createdBy {
		return nil
	}
	return fmt.Errorf("user=%s is not the owner with error=%w", principal.UserID, inErrors.ErrForbidden)
}

// translateError maps driver errors onto the package sentinels so callers can
// branch with errors.Is.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Join(inErrors.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(inErrors.ErrAlreadyExists, err)
	}
	return err
}

func getFromCache[T any](c context.Context, cache *redis.Client, key string) (T, bool) {
	var value T
	raw, err := cache.Get(c, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(c).Warn().Err(err).Str(constants.KEY_CACHE_KEY, key).Msg("failed reading cache")
		}
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Str(constants.KEY_CACHE_KEY, key).Msg("failed unmarshalling cache")
		return value, false
	}
	return value, true
}

// storeInCache and the invalidate/publish helpers only log on failure. The
// database write has already committed and readers fall back to it.
func (svc CatalogService) storeInCache(c context.Context, key string, value interface{}) {
	logger := zerolog.Ctx(c).With().Str(constants.KEY_CACHE_KEY, key).Logger()
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Msg("failed marshalling cache value")
		return
	}
	if err := svc.cache.Set(c, key, payload, svc.cacheTTL).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed writing cache")
		return
	}
	logger.Trace().Msg("stored value in cache")
}

func (svc CatalogService) announce(c context.Context, key string, change subscription.Change) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_CACHE_KEY, key).
		Any(constants.KEY_CATALOG_CHANGE, change).
		Logger()

	if err := svc.cache.Del(c, key).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed invalidating cache")
	}
	if err := svc.publisher.Publish(c, change); err != nil {
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Debug().Msg("published catalog change")
}

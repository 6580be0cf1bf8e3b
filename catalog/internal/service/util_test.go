package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Alturino/journey/catalog/internal/repository"
	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/infra"
)

type fixture struct {
	pool    *pgxpool.Pool
	cache   *redis.Client
	service CatalogService
}

var (
	admin         = auth.Principal{UserID: uuid.New(), Role: auth.Admin}
	member        = auth.Principal{UserID: uuid.New(), Role: auth.Member}
	stayManager   = auth.Principal{UserID: uuid.New(), Role: auth.Manager(auth.ManagerStay)}
	experienceMgr = auth.Principal{UserID: uuid.New(), Role: auth.Manager(auth.ManagerExperience)}
	otherExpMgr   = auth.Principal{UserID: uuid.New(), Role: auth.Manager(auth.ManagerExperience)}
)

func setup(t *testing.T) fixture {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}
	c := context.Background()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("journey"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(c, "file://../../../migrations", pgConnStr))

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	require.NoError(t, err)
	pgConfig.AfterConnect = infra.RegisterTypes
	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(c))
	t.Cleanup(pool.Close)

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	require.NoError(t, err)
	redisOpt, err := redis.ParseURL(redisConnStr)
	require.NoError(t, err)
	cache := redis.NewClient(redisOpt)
	require.NoError(t, cache.Ping(c).Err())
	t.Cleanup(func() { cache.Close() })

	return fixture{
		pool:    pool,
		cache:   cache,
		service: NewCatalogService(pool, repository.New(pool), cache, time.Minute),
	}
}

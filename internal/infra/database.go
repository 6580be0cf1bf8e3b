package infra

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Alturino/journey/internal/config"
	"github.com/Alturino/journey/internal/constants"
	"github.com/Alturino/journey/internal/otel"
)

func PostgresURL(dbConfig config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(dbConfig.Username, dbConfig.Password),
		Host:   fmt.Sprintf("%s:%d", dbConfig.Host, dbConfig.Port),
		Path:   dbConfig.Name,
	}
	query := u.Query()
	query.Set("sslmode", "disable")
	if dbConfig.TimeZone != "" {
		query.Set("timezone", dbConfig.TimeZone)
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// RegisterTypes is used as pgxpool AfterConnect so uuid columns scan into
// github.com/google/uuid values.
func RegisterTypes(c context.Context, conn *pgx.Conn) error {
	pgxuuid.Register(conn.TypeMap())
	return nil
}

func NewDatabaseClient(c context.Context, dbConfig config.Database) *pgxpool.Pool {
	c, span := otel.Tracer.Start(c, "infra NewDatabaseClient")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "infra NewDatabaseClient").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing pgx config").Logger()
	logger.Info().Msg("initializing pgx config")
	postgresUrl := PostgresURL(dbConfig)
	pgxConfig, err := pgxpool.ParseConfig(postgresUrl)
	if err != nil {
		err = fmt.Errorf("failed creating pgx config with error=%w", err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	pgxConfig.MaxConns = dbConfig.MaxConnections
	pgxConfig.MinConns = dbConfig.MinConnections
	pgxConfig.MaxConnLifetime = 15 * time.Minute
	pgxConfig.MaxConnIdleTime = 5 * time.Minute
	pgxConfig.AfterConnect = RegisterTypes
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer(
		otelpgx.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	logger.Info().Msg("initialized pgx config")

	logger = logger.With().Str(constants.KEY_PROCESS, "migrating database").Logger()
	logger.Info().Msg("migrating database")
	c = logger.WithContext(c)
	if err := Migrate(c, dbConfig.MigrationPath, postgresUrl); err != nil {
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("migrated database")

	logger = logger.With().Str(constants.KEY_PROCESS, "creating connection pool").Logger()
	logger.Info().Msg("creating connection pool")
	pool, err := pgxpool.NewWithConfig(c, pgxConfig)
	if err != nil {
		err = fmt.Errorf("failed creating connection pool with error=%w", err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("created connection pool")

	logger = logger.With().Str(constants.KEY_PROCESS, "pinging db").Logger()
	logger.Info().Msg("pinging db")
	if err = pool.Ping(c); err != nil {
		err = fmt.Errorf("failed pinging db with error=%w", err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("pinged db")

	return pool
}

func Migrate(c context.Context, migrationPath string, postgresUrl string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "infra Migrate").
		Logger()

	logger.Info().Msg("initializing migration")
	migration, err := migrate.New(migrationPath, postgresUrl)
	if err != nil {
		return fmt.Errorf("failed initializing migration with error=%w", err)
	}
	defer migration.Close()
	logger.Info().Msg("initialized migration")

	logger.Info().Msg("migration up")
	err = migration.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed migration up with error=%w", err)
	}
	logger.Info().Msg("migrated up")
	return nil
}

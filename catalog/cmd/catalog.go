package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/journey/catalog/internal/controller"
	"github.com/Alturino/journey/catalog/internal/otel"
	"github.com/Alturino/journey/catalog/internal/repository"
	"github.com/Alturino/journey/catalog/internal/service"
	"github.com/Alturino/journey/internal/config"
	"github.com/Alturino/journey/internal/constants"
	"github.com/Alturino/journey/internal/infra"
	"github.com/Alturino/journey/internal/log"
	"github.com/Alturino/journey/internal/middleware"
	inOtel "github.com/Alturino/journey/internal/otel"
)

func RunCatalogService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunCatalogService")
	defer span.End()

	cfg := config.Get(c, constants.APP_CATALOG_SERVICE)

	logger := log.Get(filepath.Join("/var/log/", constants.APP_CATALOG_SERVICE+".log"), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_CATALOG_SERVICE).
		Str(constants.KEY_TAG, "main RunCatalogService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.APP_CATALOG_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(context.Background())
		err = inOtel.ShutdownOtel(c, shutdownFuncs)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger.Info().Msg("closing database")
		db.Close()
		logger.Info().Msg("closed database")
	}()
	queries := repository.New(db)
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger.Info().Msg("closing cache")
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("closed cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing catalog service").Logger()
	logger.Info().Msg("initializing catalog service")
	catalogService := service.NewCatalogService(db, queries, cache, cfg.Cache.TTL)
	logger.Info().Msg("initialized catalog service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	api := router.NewRoute().Subrouter()
	api.Use(
		otelmux.Middleware(constants.APP_CATALOG_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	controller.AttachCatalogController(api, &catalogService, []byte(cfg.Application.SecretKey))
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	baseLogger := logger.With().
		Reset().
		Timestamp().
		Caller().
		Str(constants.KEY_APP_NAME, constants.APP_CATALOG_SERVICE).
		Logger()
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return baseLogger.WithContext(c) },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-c.Done():
		logger.Info().Msg("received interuption signal shutting down")
	case err := <-serverErr:
		err = fmt.Errorf("encounter error=%w while running server", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "shutting down server").Logger()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down server with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("shutdown server")
}

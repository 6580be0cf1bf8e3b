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

	"github.com/Alturino/journey/cart/internal/controller"
	"github.com/Alturino/journey/cart/internal/otel"
	"github.com/Alturino/journey/cart/internal/service"
	"github.com/Alturino/journey/cart/internal/store"
	"github.com/Alturino/journey/catalog/pkg/client"
	"github.com/Alturino/journey/catalog/pkg/subscription"
	"github.com/Alturino/journey/internal/config"
	"github.com/Alturino/journey/internal/constants"
	"github.com/Alturino/journey/internal/infra"
	"github.com/Alturino/journey/internal/log"
	"github.com/Alturino/journey/internal/middleware"
	inOtel "github.com/Alturino/journey/internal/otel"
)

const (
	STORE_MEMORY = "memory"
	STORE_REDIS  = "redis"
)

func RunCartService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunCartService")
	defer span.End()

	cfg := config.Get(c, constants.APP_CART_SERVICE)

	logger := log.Get(filepath.Join("/var/log/", constants.APP_CART_SERVICE+".log"), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_CART_SERVICE).
		Str(constants.KEY_TAG, "main RunCartService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.APP_CART_SERVICE, cfg.Otel)
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

	logger = logger.With().
		Str(constants.KEY_PROCESS, "initializing cart store").
		Str("store", cfg.Cart.Store).
		Logger()
	logger.Info().Msg("initializing cart store")
	var cartStore store.Store
	switch cfg.Cart.Store {
	case STORE_MEMORY:
		cartStore = store.NewMemoryStore(cfg.Cart.SessionTTL)
	case STORE_REDIS:
		cartStore = store.NewRedisStore(cache, cfg.Cart.SessionTTL)
	default:
		err = fmt.Errorf("unknown cart store=%s", cfg.Cart.Store)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized cart store")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "initializing catalog client").
		Str("catalogBaseUrl", cfg.Cart.CatalogBaseURL).
		Logger()
	logger.Info().Msg("initializing catalog client")
	c = logger.WithContext(c)
	catalogClient := client.New(cfg.Cart.CatalogBaseURL, cfg.Cache.TTL)
	sub, err := subscription.NewSubscriber(cache).Subscribe(c)
	if err != nil {
		err = fmt.Errorf("failed subscribing to catalog changes with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg("catalog lookups fall back to cache expiry")
	} else {
		defer func() {
			logger.Info().Msg("closing catalog subscription")
			if err := sub.Close(); err != nil {
				err = fmt.Errorf("failed closing catalog subscription with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			logger.Info().Msg("closed catalog subscription")
		}()
		go catalogClient.Watch(c, sub.Changes())
	}
	logger.Info().Msg("initialized catalog client")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	cartService, err := service.NewCartService(cartStore, catalogClient)
	if err != nil {
		err = fmt.Errorf("failed initializing cart service with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	api := router.NewRoute().Subrouter()
	api.Use(
		otelmux.Middleware(constants.APP_CART_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	controller.AttachCartController(api, &cartService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	baseLogger := logger.With().
		Reset().
		Timestamp().
		Caller().
		Str(constants.KEY_APP_NAME, constants.APP_CART_SERVICE).
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

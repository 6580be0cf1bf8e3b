package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/journey/internal/constants"
)

type Application struct {
	Env       string `mapstructure:"env"        json:"env"`
	Host      string `mapstructure:"host"       json:"host"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	Port      int    `mapstructure:"port"       json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	TimeZone       string `mapstructure:"timezone"        json:"timezone"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string        `mapstructure:"host"     json:"host"`
	Password string        `mapstructure:"password" json:"-"`
	Database int           `mapstructure:"database" json:"database"`
	Port     uint16        `mapstructure:"port"     json:"port"`
	TTL      time.Duration `mapstructure:"ttl"      json:"ttl"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Cart struct {
	Store          string        `mapstructure:"store"            json:"store"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"      json:"session_ttl"`
	CatalogBaseURL string        `mapstructure:"catalog_base_url" json:"catalog_base_url"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Cart        `mapstructure:"cart"        json:"cart"`
}

var (
	once   sync.Once
	config *Config
)

// Get loads env/<filename>.yaml once per process. A .env file in the working
// directory, when present, is loaded into the environment first so that
// APPLICATION_PORT style variables override the file.
func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "config Get").
			Str("filename", filename).
			Logger()

		logger = logger.With().Str(constants.KEY_PROCESS, "loading dotenv").Logger()
		logger.Info().Msg("loading dotenv")
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("failed loading dotenv with error=%w", err)
			logger.Warn().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("loaded dotenv")

		v := viper.New()
		v.SetConfigName(filename)
		v.AddConfigPath("./env")
		v.SetConfigType("yaml")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		setDefaults(v)

		logger = logger.With().Str(constants.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		if err := v.ReadInConfig(); err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(constants.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		cfg := Config{}
		if err := v.Unmarshal(&cfg); err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger.Info().Any(constants.KEY_CONFIG, cfg).Msg("unmarshaled config")
	})
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("cart.store", "redis")
	v.SetDefault("cart.session_ttl", 24*time.Hour)
	v.SetDefault("cart.catalog_base_url", "http://catalog-service:8080")
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
}

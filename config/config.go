package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration of the console and the fixture API.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Data grid client
	API    APIConfig
	Cache  CacheConfig
	Screen ScreenConfig

	// Fixture API server
	Fixture FixtureConfig
}

type EnvironmentConfig struct {
	Name string `validate:"oneof=development staging production"`
}

type LoggerConfig struct {
	Level        string `validate:"oneof=debug info warn error"`
	Mode         string
	Encoding     string `validate:"oneof=console json"`
	ColorEnabled bool
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL       string `validate:"required,url"`
	AccessToken   string
	Timeout       time.Duration `validate:"gt=0"`
	RatePerSecond float64       `validate:"gte=0"`
	Burst         int           `validate:"gte=0"`
}

// CacheConfig selects and sizes the response cache.
type CacheConfig struct {
	Backend      string        `validate:"oneof=memory redis"`
	Size         int           `validate:"gt=0"`
	TTL          time.Duration `validate:"gt=0"`
	FetchTimeout time.Duration `validate:"gt=0"`
	RedisAddr    string        `validate:"required_if=Backend redis"`
	RedisPrefix  string
}

type ScreenConfig struct {
	ClearDelay    time.Duration `validate:"gte=0"`
	DebounceDelay time.Duration `validate:"gte=0"`
	DefaultLimit  int           `validate:"gt=0"`
}

type FixtureConfig struct {
	Port            int    `validate:"gt=0,lt=65536"`
	Mode            string `validate:"oneof=debug release test"`
	RateLimitPerMin int    `validate:"gte=0"`
	Seed            int    `validate:"gte=0"`
}

var validate = validator.New()

// Load loads configuration using Viper.
// Config file name: config.yaml; searched in ./config, ., /etc/admin-datagrid/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/admin-datagrid/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Logger
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// REST client
	cfg.API.BaseURL = strings.TrimRight(v.GetString("api.base_url"), "/")
	cfg.API.AccessToken = v.GetString("api.access_token")
	cfg.API.Timeout = v.GetDuration("api.timeout")
	cfg.API.RatePerSecond = v.GetFloat64("api.rate_per_second")
	cfg.API.Burst = v.GetInt("api.burst")

	// Cache
	cfg.Cache.Backend = v.GetString("cache.backend")
	cfg.Cache.Size = v.GetInt("cache.size")
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Cache.FetchTimeout = v.GetDuration("cache.fetch_timeout")
	cfg.Cache.RedisAddr = v.GetString("cache.redis_addr")
	cfg.Cache.RedisPrefix = v.GetString("cache.redis_prefix")

	// Screen
	cfg.Screen.ClearDelay = v.GetDuration("screen.clear_delay")
	cfg.Screen.DebounceDelay = v.GetDuration("screen.debounce_delay")
	cfg.Screen.DefaultLimit = v.GetInt("screen.default_limit")

	// Fixture API
	cfg.Fixture.Port = v.GetInt("fixture.port")
	cfg.Fixture.Mode = v.GetString("fixture.mode")
	cfg.Fixture.RateLimitPerMin = v.GetInt("fixture.rate_limit_per_min")
	cfg.Fixture.Seed = v.GetInt("fixture.seed")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("api.base_url", "http://localhost:8080/api/v1")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.rate_per_second", 10)
	v.SetDefault("api.burst", 5)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.fetch_timeout", "30s")
	v.SetDefault("cache.redis_prefix", "datagrid:")

	v.SetDefault("screen.clear_delay", "500ms")
	v.SetDefault("screen.debounce_delay", "500ms")
	v.SetDefault("screen.default_limit", 50)

	v.SetDefault("fixture.port", 8080)
	v.SetDefault("fixture.mode", "debug")
	v.SetDefault("fixture.rate_limit_per_min", 600)
	v.SetDefault("fixture.seed", 120)
}

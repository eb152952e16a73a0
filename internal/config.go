package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the storefront's runtime configuration, sourced from the
// environment (optionally seeded from a .env file in development).
type Config struct {
	Env      string `mapstructure:"env" validate:"oneof=dev prod"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Port     uint16 `mapstructure:"port" validate:"required"`

	// VendureURL is the base URL of the commerce platform's shop API
	// (GraphQL endpoint, e.g. http://localhost:3000/shop-api).
	VendureURL string `mapstructure:"vendure_url" validate:"required,url"`

	// NatsURL enables cart domain-event publishing when set. Empty disables
	// publishing (events are dropped, not buffered).
	NatsURL string `mapstructure:"nats_url" validate:"omitempty,url"`

	// SessionTTL is how long an idle storefront session keeps its cart
	// controller before eviction.
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"required"`

	// BackendTimeout bounds each commerce API call.
	BackendTimeout time.Duration `mapstructure:"backend_timeout" validate:"required"`
}

// NewConfig loads and validates configuration. A missing .env file is fine;
// real deployments configure through the environment.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("pawluxe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 8080)
	v.SetDefault("vendure_url", "http://localhost:3000/shop-api")
	v.SetDefault("nats_url", "")
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("backend_timeout", 15*time.Second)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

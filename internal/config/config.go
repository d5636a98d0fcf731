// Package config loads gravemap settings from defaults, an optional
// gravemap.yaml, a .env file and GRAVEMAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Origin  OriginConfig  `mapstructure:"origin"`
	Map     MapConfig     `mapstructure:"map"`
	Points  PointsConfig  `mapstructure:"points"`
	Routing RoutingConfig `mapstructure:"routing"`
	Google  GoogleConfig  `mapstructure:"google"`
	Log     LogConfig     `mapstructure:"log"`
}

// OriginConfig is the fixed user position. Live geolocation is not used.
type OriginConfig struct {
	Lat float64 `mapstructure:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `mapstructure:"lng" validate:"gte=-180,lte=180"`
}

type MapConfig struct {
	Zoom float64 `mapstructure:"zoom" validate:"gt=0,lte=64"`
}

// PointsConfig selects the grave dataset. An empty path uses the built-in set.
type PointsConfig struct {
	Path string `mapstructure:"path"`
}

type RoutingConfig struct {
	Backend   string        `mapstructure:"backend" validate:"oneof=straight google"`
	Mode      string        `mapstructure:"mode" validate:"oneof=walking driving"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	CacheSize int           `mapstructure:"cache_size" validate:"gte=0"`
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
	File   string `mapstructure:"file" validate:"required"`
}

var validate = validator.New()

// Load reads configuration. dir is searched for gravemap.yaml and .env in
// addition to the working directory; pass "" for the working directory only.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("origin.lat", 12.9728512)
	v.SetDefault("origin.lng", 77.5815168)
	v.SetDefault("map.zoom", 1.0)
	v.SetDefault("points.path", "")
	v.SetDefault("routing.backend", "straight")
	v.SetDefault("routing.mode", "walking")
	v.SetDefault("routing.timeout", 10*time.Second)
	v.SetDefault("routing.cache_size", 64)
	v.SetDefault("google.api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "gravemap.log")

	v.SetConfigName("gravemap")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// GRAVEMAP_ROUTING_BACKEND -> routing.backend
	v.SetEnvPrefix("GRAVEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Google.APIKey == "" {
		cfg.Google.APIKey = googleAPIKey(dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// googleAPIKey falls back to GOOGLE_MAPS_API_KEY from the environment or a
// .env file.
func googleAPIKey(dir string) string {
	if k := os.Getenv("GOOGLE_MAPS_API_KEY"); k != "" {
		return k
	}
	path := ".env"
	if dir != "" {
		path = dir + string(os.PathSeparator) + ".env"
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return ""
	}
	return env["GOOGLE_MAPS_API_KEY"]
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	var errs []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, FormatValidationError(fe))
		}
	}
	if c.Routing.Backend == "google" && c.Google.APIKey == "" {
		errs = append(errs, "google.api_key (or GOOGLE_MAPS_API_KEY) is required for the google backend")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// FormatValidationError renders one field error for humans.
func FormatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Namespace() + " is required"
	case "oneof":
		return err.Namespace() + " must be one of [" + err.Param() + "]"
	case "gte", "lte", "gt":
		return fmt.Sprintf("%s must be %s %s, got %v", err.Namespace(), err.Tag(), err.Param(), err.Value())
	default:
		return err.Namespace() + " failed " + err.Tag() + " validation"
	}
}

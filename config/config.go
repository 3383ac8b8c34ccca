package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Models    ModelsConfig
	S3        S3Config
	Forecast  ForecastConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ModelsConfig locates the model artifacts
type ModelsConfig struct {
	Source         string        `mapstructure:"source"` // "file" or "s3"
	Dir            string        `mapstructure:"dir"`
	PricingPath    string        `mapstructure:"pricing_path"`
	DemandPath     string        `mapstructure:"demand_path"`
	FeaturesPath   string        `mapstructure:"features_path"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
}

// S3Config holds object storage settings used when models.source is "s3"
type S3Config struct {
	Bucket         string `mapstructure:"bucket"`
	Prefix         string `mapstructure:"prefix"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
}

// ForecastConfig holds prediction defaults and constants
type ForecastConfig struct {
	DefaultDays       int           `mapstructure:"default_days"`
	DefaultCities     []string      `mapstructure:"default_cities"`
	DemandConfidence  float64       `mapstructure:"demand_confidence"`
	PricingConfidence float64       `mapstructure:"pricing_confidence"`
	Validity          time.Duration `mapstructure:"validity"`
	Holidays          []string      `mapstructure:"holidays"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/smartmandi/")

	// Environment variable settings
	v.SetEnvPrefix("SMARTMANDI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Model defaults
	v.SetDefault("models.source", "file")
	v.SetDefault("models.dir", "./models")
	v.SetDefault("models.pricing_path", "xgb_model.json")
	v.SetDefault("models.demand_path", "demand_model.json")
	v.SetDefault("models.features_path", "model_features.json")
	v.SetDefault("models.reload_interval", "1h")

	// S3 defaults
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.force_path_style", false)

	// Forecast defaults
	v.SetDefault("forecast.default_days", 7)
	v.SetDefault("forecast.default_cities", []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Pune"})
	v.SetDefault("forecast.demand_confidence", 0.85)
	v.SetDefault("forecast.pricing_confidence", 0.82)
	v.SetDefault("forecast.validity", "24h")
	v.SetDefault("forecast.holidays", []string{})

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Models.Source != "file" && config.Models.Source != "s3" {
		return fmt.Errorf("models source must be 'file' or 's3', got: %s", config.Models.Source)
	}

	if config.Models.Source == "s3" {
		if config.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when models source is 's3' (set SMARTMANDI_S3_BUCKET)")
		}
		if config.S3.Region == "" {
			return fmt.Errorf("S3 region is required when models source is 's3' (set SMARTMANDI_S3_REGION)")
		}
	}

	if config.Models.PricingPath == "" {
		return fmt.Errorf("pricing model path is required")
	}

	if config.Forecast.DefaultDays < 0 {
		return fmt.Errorf("forecast default_days must not be negative, got: %d", config.Forecast.DefaultDays)
	}

	if config.Forecast.DemandConfidence <= 0 || config.Forecast.DemandConfidence > 1 {
		return fmt.Errorf("demand confidence must be within (0, 1], got: %v", config.Forecast.DemandConfidence)
	}

	if config.Forecast.PricingConfidence <= 0 || config.Forecast.PricingConfidence > 1 {
		return fmt.Errorf("pricing confidence must be within (0, 1], got: %v", config.Forecast.PricingConfidence)
	}

	if config.Forecast.Validity <= 0 {
		return fmt.Errorf("forecast validity must be positive, got: %v", config.Forecast.Validity)
	}

	for _, h := range config.Forecast.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("holiday %q is not a YYYY-MM-DD date", h)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	apperrors "fleet-scheduler-backend/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Background sweep
	SweepIntervalMinutes int `mapstructure:"SWEEP_INTERVAL_MINUTES"`

	// Suggestion tuning (initial values; runtime overrides go through TuningStore)
	MinGapMinutes          int     `mapstructure:"MIN_GAP_MINUTES"`
	MaxGapMinutes          int     `mapstructure:"MAX_GAP_MINUTES"`
	MaxDistanceKm          float64 `mapstructure:"MAX_DISTANCE_KM"`
	DistanceWeight         float64 `mapstructure:"DISTANCE_WEIGHT"`
	TimeWeight             float64 `mapstructure:"TIME_WEIGHT"`
	TrafficFactor          float64 `mapstructure:"TRAFFIC_FACTOR"`
	EfficiencyThreshold    float64 `mapstructure:"EFFICIENCY_THRESHOLD"`
	MaxSuggestionsPerRoute int     `mapstructure:"MAX_SUGGESTIONS_PER_ROUTE"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "fleet_scheduler")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Rate limiting defaults
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	// Sweep defaults
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 60)

	// Suggestion tuning defaults
	viper.SetDefault("MIN_GAP_MINUTES", 30)
	viper.SetDefault("MAX_GAP_MINUTES", 240)
	viper.SetDefault("MAX_DISTANCE_KM", 50.0)
	viper.SetDefault("DISTANCE_WEIGHT", 0.4)
	viper.SetDefault("TIME_WEIGHT", 0.6)
	viper.SetDefault("TRAFFIC_FACTOR", 1.2)
	viper.SetDefault("EFFICIENCY_THRESHOLD", 0.7)
	viper.SetDefault("MAX_SUGGESTIONS_PER_ROUTE", 5)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	if err := config.SuggestionTuning().Validate(); err != nil {
		return err
	}

	return nil
}

// SuggestionTuning returns the initial tuning snapshot from config values
func (c *Config) SuggestionTuning() SuggestionTuning {
	return SuggestionTuning{
		MinGapMinutes:          c.MinGapMinutes,
		MaxGapMinutes:          c.MaxGapMinutes,
		MaxDistanceKm:          c.MaxDistanceKm,
		DistanceWeight:         c.DistanceWeight,
		TimeWeight:             c.TimeWeight,
		TrafficFactor:          c.TrafficFactor,
		EfficiencyThreshold:    c.EfficiencyThreshold,
		MaxSuggestionsPerRoute: c.MaxSuggestionsPerRoute,
	}
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SuggestionTuning is the scoring configuration for the consolidation
// suggestion engine. The defaults are empirical; they are configuration,
// not hard-coded law.
type SuggestionTuning struct {
	MinGapMinutes          int     `json:"min_gap_minutes"`
	MaxGapMinutes          int     `json:"max_gap_minutes"`
	MaxDistanceKm          float64 `json:"max_distance_km"`
	DistanceWeight         float64 `json:"distance_weight"`
	TimeWeight             float64 `json:"time_weight"`
	TrafficFactor          float64 `json:"traffic_factor"`
	EfficiencyThreshold    float64 `json:"efficiency_threshold"`
	MaxSuggestionsPerRoute int     `json:"max_suggestions_per_route"`
}

// Validate checks the tuning values are usable
func (t SuggestionTuning) Validate() error {
	if t.MinGapMinutes < 0 || t.MinGapMinutes >= t.MaxGapMinutes {
		return apperrors.ErrInvalidGapConfig
	}
	if math.Abs(t.DistanceWeight+t.TimeWeight-1.0) > 1e-9 {
		return apperrors.ErrInvalidWeightConfig
	}
	if t.DistanceWeight < 0 || t.TimeWeight < 0 {
		return apperrors.ErrInvalidWeightConfig
	}
	if t.MaxDistanceKm <= 0 {
		return apperrors.NewValidationError("max_distance_km", "must be positive")
	}
	if t.EfficiencyThreshold < 0 || t.EfficiencyThreshold > 1 {
		return apperrors.NewValidationError("efficiency_threshold", "must be between 0 and 1")
	}
	if t.MaxSuggestionsPerRoute < 1 {
		return apperrors.NewValidationError("max_suggestions_per_route", "must be at least 1")
	}
	if t.TrafficFactor < 1 {
		return apperrors.NewValidationError("traffic_factor", "must be at least 1")
	}
	return nil
}

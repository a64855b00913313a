package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Matching MatchingConfig `yaml:"matching" mapstructure:"matching"`
	History  HistoryConfig  `yaml:"history" mapstructure:"history"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// MatchingConfig configures the scoring engine: factor weights, the location
// decay constant, and recommendation defaults.
type MatchingConfig struct {
	InsuranceWeight float64 `yaml:"insurance_weight" mapstructure:"insurance_weight"`
	LocationWeight  float64 `yaml:"location_weight" mapstructure:"location_weight"`
	ServicesWeight  float64 `yaml:"services_weight" mapstructure:"services_weight"`
	AgeWeight       float64 `yaml:"age_weight" mapstructure:"age_weight"`
	GenderWeight    float64 `yaml:"gender_weight" mapstructure:"gender_weight"`

	DistanceDecay        float64 `yaml:"distance_decay" mapstructure:"distance_decay"`
	DefaultRadiusMiles   float64 `yaml:"default_radius_miles" mapstructure:"default_radius_miles"`
	DefaultResultLimit   int     `yaml:"default_result_limit" mapstructure:"default_result_limit"`
	RadiusExpansionMiles float64 `yaml:"radius_expansion_miles" mapstructure:"radius_expansion_miles"`
}

// HistoryConfig configures the recommendation history store.
type HistoryConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	Path          string `yaml:"path" mapstructure:"path"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
	RetentionDays int    `yaml:"retention_days" mapstructure:"retention_days"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLACEMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Weights sum to 1.0.
	v.SetDefault("matching.insurance_weight", 0.30)
	v.SetDefault("matching.location_weight", 0.25)
	v.SetDefault("matching.services_weight", 0.25)
	v.SetDefault("matching.age_weight", 0.10)
	v.SetDefault("matching.gender_weight", 0.10)
	v.SetDefault("matching.distance_decay", 0.5)
	v.SetDefault("matching.default_radius_miles", 50)
	v.SetDefault("matching.default_result_limit", 10)
	v.SetDefault("matching.radius_expansion_miles", 25)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.path", "placement_history.db")
	v.SetDefault("history.retention_days", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

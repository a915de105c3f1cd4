package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Observability ObservabilityConfig `yaml:"observability"`
	League        LeagueConfig        `yaml:"league"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL runs the event bus in memory.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Address           string   `yaml:"address"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	Burst             int      `yaml:"burst"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment     string  `yaml:"environment"`
	LogLevel        string  `yaml:"log_level"`
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	OTLPInsecure    bool    `yaml:"otlp_insecure"`
	TraceSampleRate float64 `yaml:"trace_sample_rate"`
}

// LeagueConfig holds competition settings.
type LeagueConfig struct {
	// AutoTournament creates a playoff bracket when a season completes.
	AutoTournament bool `yaml:"auto_tournament"`
	// MaxSeeds caps the bracket field; 0 seeds the whole roster.
	MaxSeeds int `yaml:"max_seeds"`
	// WeekRolloverInterval is how often active seasons advance; 0 disables the scheduler.
	WeekRolloverInterval time.Duration `yaml:"week_rollover_interval"`
}

// LoadConfig loads the configuration from a YAML file, then applies environment overrides.
// A missing file falls back to environment variables only.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	cfg := defaults()
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	return &cfg, nil
}

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:           ":8080",
			RequestsPerSecond: 20,
			Burst:             40,
		},
		JWT: JWTConfig{DefaultTTL: 24 * time.Hour},
		Observability: ObservabilityConfig{
			Environment:     "production",
			LogLevel:        "info",
			TraceSampleRate: 0.1,
		},
		League: LeagueConfig{
			WeekRolloverInterval: 7 * 24 * time.Hour,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}
	if v := os.Getenv("TRACE_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRACE_SAMPLE_RATE value: %w", err)
		}
		cfg.Observability.TraceSampleRate = f
	}
	if v := os.Getenv("AUTO_TOURNAMENT"); v != "" {
		cfg.League.AutoTournament = v == "true"
	}
	if v := os.Getenv("MAX_SEEDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_SEEDS value: %w", err)
		}
		cfg.League.MaxSeeds = n
	}
	if v := os.Getenv("WEEK_ROLLOVER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WEEK_ROLLOVER_INTERVAL value: %w", err)
		}
		cfg.League.WeekRolloverInterval = d
	}
	return nil
}

// ToObsConfig maps the observability section onto observability.Config.
func ToObsConfig(appCfg *Config, version string) observability.Config {
	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(appCfg.Observability.LogLevel))
	return observability.Config{
		ServiceName:     "scorebook",
		Environment:     appCfg.Observability.Environment,
		Version:         version,
		OTLPEndpoint:    appCfg.Observability.OTLPEndpoint,
		OTLPInsecure:    appCfg.Observability.OTLPInsecure,
		TraceSampleRate: appCfg.Observability.TraceSampleRate,
		LogLevel:        level,
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Gate      GateConfig      `mapstructure:"gate"`
	AI        AIConfig        `mapstructure:"ai"`
	Fever     FeverConfig     `mapstructure:"fever"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags, set from command line rather than the config file.
	ForceReseed bool `mapstructure:"-"`
	SeedOnly    bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GateConfig holds the shared teacher access code, stored as a bcrypt hash.
// An empty hash disables the gate (development mode).
type GateConfig struct {
	AccessCodeHash string `mapstructure:"access_code_hash"`
}

type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type FeverConfig struct {
	DefaultMultiplier int           `mapstructure:"default_multiplier"`
	DefaultDuration   time.Duration `mapstructure:"default_minutes"`
}

type SeedConfig struct {
	Version  string        `mapstructure:"version"`
	Students []SeedStudent `mapstructure:"students"`
}

type SeedStudent struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("CANDYPANG")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Gate
	viper.BindEnv("gate.access_code_hash", "GATE_ACCESS_CODE_HASH")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Fever.DefaultDuration = cfg.Fever.DefaultDuration * time.Minute
	if cfg.Fever.DefaultMultiplier < 1 {
		cfg.Fever.DefaultMultiplier = 2
	}

	// The gate may be disabled in debug mode, never in release mode.
	if cfg.Server.Mode == "release" && cfg.Gate.AccessCodeHash == "" {
		return nil, fmt.Errorf("gate.access_code_hash must be set in release mode")
	}

	return &cfg, nil
}

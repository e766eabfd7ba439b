// Package config defines all configuration structures for afyabot. No I/O or
// parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters for the reference-data cache
// and the per-session rate-limit window.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// TriageConfig holds the tunables of the triage pipeline. Reference data is
// slow-changing, so the cache TTL trades a bounded staleness window for not
// re-scanning the stores on every message.
type TriageConfig struct {
	// TopMatches caps the number of condition matches returned.
	TopMatches int `mapstructure:"top_matches"`

	// LowConfidenceThreshold is the confidence below which the formatted
	// response carries a disclaimer.
	LowConfidenceThreshold float64 `mapstructure:"low_confidence_threshold"`

	// ReferenceCacheTTL bounds staleness of the cached symptom, keyword, and
	// condition corpora.
	ReferenceCacheTTL time.Duration `mapstructure:"reference_cache_ttl"`

	// ResultCacheTTL bounds staleness of cached per-symptom-set match
	// results. Zero disables result caching.
	ResultCacheTTL time.Duration `mapstructure:"result_cache_ttl"`
}

// ChatConfig holds message-processing limits enforced by the request layer.
type ChatConfig struct {
	MaxMessageLength int           `mapstructure:"max_message_length"`
	RateLimitWindow  time.Duration `mapstructure:"rate_limit_window"`
}

// OverpassConfig holds parameters for the OpenStreetMap Overpass hospital
// lookup.
type OverpassConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	SearchRadius int           `mapstructure:"search_radius"` // meters
	ResultLimit  int           `mapstructure:"result_limit"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Config is the root configuration structure. Every infrastructure component
// and application service reads its settings from the relevant sub-struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Triage   TriageConfig   `mapstructure:"triage"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Overpass OverpassConfig `mapstructure:"overpass"`
	Log      logging.Config `mapstructure:"log"`
}

// Validate performs semantic validation of the fully populated Config. It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("config: database.max_conns must be >= 1, got %d", c.Database.MaxConns)
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	if c.Triage.TopMatches < 1 {
		return fmt.Errorf("config: triage.top_matches must be >= 1, got %d", c.Triage.TopMatches)
	}
	if c.Triage.LowConfidenceThreshold < 0 || c.Triage.LowConfidenceThreshold > 1 {
		return fmt.Errorf("config: triage.low_confidence_threshold %f is out of range [0, 1]",
			c.Triage.LowConfidenceThreshold)
	}

	if c.Chat.MaxMessageLength < 1 {
		return fmt.Errorf("config: chat.max_message_length must be >= 1, got %d", c.Chat.MaxMessageLength)
	}

	if c.Overpass.Endpoint == "" {
		return fmt.Errorf("config: overpass.endpoint is required")
	}
	if c.Overpass.SearchRadius < 1 {
		return fmt.Errorf("config: overpass.search_radius must be >= 1, got %d", c.Overpass.SearchRadius)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

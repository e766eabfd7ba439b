package config

import "time"

// ApplyDefaults fills every unset field of cfg with the platform default.
// Values already set by file or environment are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "afyabot"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "afyabot"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "migrations"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "afya:"
	}

	if cfg.Triage.TopMatches == 0 {
		cfg.Triage.TopMatches = 3
	}
	if cfg.Triage.LowConfidenceThreshold == 0 {
		cfg.Triage.LowConfidenceThreshold = 0.5
	}
	if cfg.Triage.ReferenceCacheTTL == 0 {
		cfg.Triage.ReferenceCacheTTL = 5 * time.Minute
	}
	if cfg.Triage.ResultCacheTTL == 0 {
		cfg.Triage.ResultCacheTTL = 30 * time.Second
	}

	if cfg.Chat.MaxMessageLength == 0 {
		cfg.Chat.MaxMessageLength = 5000
	}
	if cfg.Chat.RateLimitWindow == 0 {
		cfg.Chat.RateLimitWindow = time.Second
	}

	if cfg.Overpass.Endpoint == "" {
		cfg.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.SearchRadius == 0 {
		cfg.Overpass.SearchRadius = 5000
	}
	if cfg.Overpass.ResultLimit == 0 {
		cfg.Overpass.ResultLimit = 10
	}
	if cfg.Overpass.Timeout == 0 {
		cfg.Overpass.Timeout = 10 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// NewDefaultConfig returns a Config populated entirely from defaults. Useful
// for tests and for local runs without a config file.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

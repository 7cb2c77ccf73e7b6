package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "compass"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "compass"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://ddragon.leagueoflegends.com/cdn/14.24.1"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 30 * time.Second
	}
	if cfg.Catalog.RateLimit.Requests == 0 {
		cfg.Catalog.RateLimit.Requests = 2
	}
	if cfg.Catalog.RateLimit.Burst == 0 {
		cfg.Catalog.RateLimit.Burst = 10
	}
	if cfg.Catalog.Retry.MaxAttempts == 0 {
		cfg.Catalog.Retry.MaxAttempts = 3
	}
	if cfg.Catalog.Retry.BackoffBase == 0 {
		cfg.Catalog.Retry.BackoffBase = 1 * time.Second
	}

	// Game defaults
	if cfg.Game.SpawnInterval == 0 {
		cfg.Game.SpawnInterval = 5 * time.Minute
	}
	if cfg.Game.CountPerKind == 0 {
		cfg.Game.CountPerKind = 5
	}
	if cfg.Game.JitterDeg == 0 {
		cfg.Game.JitterDeg = 0.01
	}
	if cfg.Game.ConsumeRadiusM == 0 {
		cfg.Game.ConsumeRadiusM = 50
	}
	if cfg.Game.MinPoolPower == 0 {
		cfg.Game.MinPoolPower = 5
	}
	if cfg.Game.MaxPoolPower == 0 {
		cfg.Game.MaxPoolPower = 20
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}

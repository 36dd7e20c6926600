// Package config handles loading paddock configuration files.
//
// # Overview
//
// This package reads paddock's TOML configuration to discover which Ergast
// endpoint to query, how long to wait for it, whether to cache responses in
// Redis, and how verbosely to log.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/paddock/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply PADDOCK_BASE_URL, PADDOCK_REDIS_URL and PADDOCK_LOG_LEVEL overrides
//
// LoadEnv may be called first to populate those variables from a .env file.
//
// # Default Values
//
//   - Config file: ~/.config/paddock/config.toml
//   - Base URL: http://ergast.com/api/f1
//   - Timeout: none
//   - Redis cache: disabled
//   - Cache TTL: 1h (only used when redis_url is set)
//   - Log level: warn
//
// # TOML Format
//
//	base_url = "http://ergast.com/api/f1"
//	user_agent = "paddock/0.1"
//	timeout = "10s"
//	redis_url = "redis://localhost:6379/0"
//	cache_ttl = "1h"
//	log_level = "info"
//
// Durations use Go syntax. Tilde expansion is performed on the config path.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, malformed durations and unknown log levels
//
// Missing config files are NOT an error. paddock works against the public
// Ergast API without any configuration.
//
// # Usage Example
//
//	if err := config.LoadEnv(""); err != nil {
//		log.Fatalf("failed to load .env: %v", err)
//	}
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	client, err := ergast.NewClient(cfg.BaseURL, ergast.WithTimeout(cfg.Timeout))
package config

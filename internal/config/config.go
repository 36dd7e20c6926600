package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/paddock/ergast"
)

// Config captures how paddock reaches the Ergast API and how it logs.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RedisURL  string
	CacheTTL  time.Duration
	LogLevel  slog.Level
}

const (
	defaultConfigPath = "~/.config/paddock/config.toml"
	defaultCacheTTL   = time.Hour
	defaultLogLevel   = slog.LevelWarn

	envBaseURL  = "PADDOCK_BASE_URL"
	envRedisURL = "PADDOCK_REDIS_URL"
	envLogLevel = "PADDOCK_LOG_LEVEL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:  ergast.DefaultBaseURL,
		CacheTTL: defaultCacheTTL,
		LogLevel: defaultLogLevel,
	}
}

// LoadEnv reads KEY=value pairs from a dotenv file into the process
// environment. A missing file is not an error; variables already set win.
func LoadEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load locates and parses the paddock config, falling back to defaults when
// missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		return cfg, applyEnv(&cfg)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL   string `toml:"base_url"`
		UserAgent string `toml:"user_agent"`
		Timeout   string `toml:"timeout"`
		RedisURL  string `toml:"redis_url"`
		CacheTTL  string `toml:"cache_ttl"`
		LogLevel  string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	cfg.RedisURL = strings.TrimSpace(raw.RedisURL)

	if cfg.Timeout, err = parseDuration("timeout", raw.Timeout, 0); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = parseDuration("cache_ttl", raw.CacheTTL, defaultCacheTTL); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if cfg.LogLevel, err = parseLevel(v); err != nil {
			return Config{}, err
		}
	}

	return cfg, applyEnv(&cfg)
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envRedisURL)); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.LogLevel = level
	}
	return nil
}

func parseDuration(name, raw string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", name)
	}
	return d, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", raw, err)
	}
	return level, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything pokesearch reads at startup.
type Config struct {
	APIURL           string
	PageLimit        int
	RequestTimeout   time.Duration
	FetchConcurrency int
	LogFile          string
	LogLevel         string
	PrefsPath        string
}

const (
	defaultConfigPath       = "~/.config/pokesearch/config.toml"
	defaultAPIURL           = "https://pokeapi.co/api/v2/"
	defaultPageLimit        = 20
	defaultRequestTimeout   = 10 * time.Second
	defaultFetchConcurrency = 20
	defaultLogFile          = "~/.local/state/pokesearch/pokesearch.log"
	defaultLogLevel         = "info"
	defaultPrefsPath        = "~/.config/pokesearch/prefs.toml"
	maxPageLimit            = 100
)

// Environment variables that override file values.
const (
	EnvAPIURL           = "POKESEARCH_API_URL"
	EnvPageLimit        = "POKESEARCH_PAGE_LIMIT"
	EnvRequestTimeout   = "POKESEARCH_REQUEST_TIMEOUT"
	EnvFetchConcurrency = "POKESEARCH_FETCH_CONCURRENCY"
	EnvLogFile          = "POKESEARCH_LOG_FILE"
	EnvLogLevel         = "POKESEARCH_LOG_LEVEL"
	EnvPrefsPath        = "POKESEARCH_PREFS"
)

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIURL:           defaultAPIURL,
		PageLimit:        defaultPageLimit,
		RequestTimeout:   defaultRequestTimeout,
		FetchConcurrency: defaultFetchConcurrency,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
		PrefsPath:        mustExpand(defaultPrefsPath),
	}
}

type fileConfig struct {
	APIURL           string `toml:"api_url"`
	PageLimit        int    `toml:"page_limit"`
	RequestTimeout   string `toml:"request_timeout"`
	FetchConcurrency *int   `toml:"fetch_concurrency"`
	LogFile          string `toml:"log_file"`
	LogLevel         string `toml:"log_level"`
	PrefsPath        string `toml:"prefs_path"`
}

// Load locates and parses the pokesearch config, falling back to defaults when
// missing, then applies POKESEARCH_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var raw fileConfig
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.applyFile(raw); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// default .env is not an error; a missing explicit path is.
func LoadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyFile(raw fileConfig) error {
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if raw.PageLimit != 0 {
		c.PageLimit = raw.PageLimit
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	if raw.FetchConcurrency != nil {
		c.FetchConcurrency = *raw.FetchConcurrency
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		c.PrefsPath = mustExpand(v)
	}
	return c.validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvAPIURL); ok {
		c.APIURL = v
	}
	if v, ok := get(EnvPageLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPageLimit, err)
		}
		c.PageLimit = n
	}
	if v, ok := get(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if v, ok := get(EnvFetchConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvFetchConcurrency, err)
		}
		c.FetchConcurrency = n
	}
	if v, ok := get(EnvLogFile); ok {
		c.LogFile = mustExpand(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvPrefsPath); ok {
		c.PrefsPath = mustExpand(v)
	}
	return c.validate()
}

// CheckPageLimit reports whether n is an allowed number of entries per page.
func CheckPageLimit(n int) error {
	if n < 1 || n > maxPageLimit {
		return fmt.Errorf("page limit %d out of range 1..%d", n, maxPageLimit)
	}
	return nil
}

func (c *Config) validate() error {
	if err := CheckPageLimit(c.PageLimit); err != nil {
		return fmt.Errorf("page_limit: %w", err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the bistrohunter API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Airtable  AirtableConfig  `yaml:"airtable"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AirtableConfig holds record store settings.
type AirtableConfig struct {
	BaseURL    string       `yaml:"base_url"`
	BaseID     string       `yaml:"base_id"`
	Table      string       `yaml:"table"`
	View       string       `yaml:"view"`
	Token      string       `yaml:"token"`
	TimeoutSec int          `yaml:"timeout_sec"`
	Fields     FieldsConfig `yaml:"fields"`
}

// FieldsConfig names the record store columns. Empty entries fall back to
// the restaurant table defaults.
type FieldsConfig struct {
	CID         string `yaml:"cid"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	PriceRange  string `yaml:"price_range"`
	Score       string `yaml:"score"`
	Lat         string `yaml:"lat"`
	Lng         string `yaml:"lng"`
	Categories  string `yaml:"categories"`
	Day         string `yaml:"day"`
	Reviews     string `yaml:"reviews"`
}

// GeocodingConfig holds place resolver settings.
type GeocodingConfig struct {
	APIKey     string `yaml:"api_key"`
	Country    string `yaml:"country"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// SearchConfig holds radius search tunables.
type SearchConfig struct {
	PerZoneTarget             int     `yaml:"per_zone_target"`
	CityTarget                int     `yaml:"city_target"`
	MaxRadiusKm               float64 `yaml:"max_radius_km"`
	RadiusStepKm              float64 `yaml:"radius_step_km"`
	ZoneInitialRadiusKm       float64 `yaml:"zone_initial_radius_km"`
	CoordinateInitialRadiusKm float64 `yaml:"coordinate_initial_radius_km"`
	CityInitialRadiusKm       float64 `yaml:"city_initial_radius_km"`
	PageSize                  int     `yaml:"page_size"`
	UseViewport               bool    `yaml:"use_viewport"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	TTLSec           int      `yaml:"ttl_sec"`
	MaxEntries       int      `yaml:"max_entries"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Airtable.BaseURL == "" {
		c.Airtable.BaseURL = "https://api.airtable.com"
	}
	if c.Airtable.Table == "" {
		c.Airtable.Table = "Restaurantes DB"
	}
	if c.Airtable.TimeoutSec <= 0 {
		c.Airtable.TimeoutSec = 10
	}
	if c.Geocoding.Country == "" {
		c.Geocoding.Country = "ES"
	}
	if c.Geocoding.TimeoutSec <= 0 {
		c.Geocoding.TimeoutSec = 5
	}
	if c.Search.PerZoneTarget <= 0 {
		c.Search.PerZoneTarget = 10
	}
	if c.Search.CityTarget <= 0 {
		c.Search.CityTarget = 10
	}
	if c.Search.MaxRadiusKm <= 0 {
		c.Search.MaxRadiusKm = 8
	}
	if c.Search.RadiusStepKm <= 0 {
		c.Search.RadiusStepKm = 1
	}
	if c.Search.ZoneInitialRadiusKm <= 0 {
		c.Search.ZoneInitialRadiusKm = 1
	}
	if c.Search.CoordinateInitialRadiusKm <= 0 {
		c.Search.CoordinateInitialRadiusKm = 2
	}
	if c.Search.CityInitialRadiusKm <= 0 {
		c.Search.CityInitialRadiusKm = 1
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 1800
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 1024
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Airtable.BaseID == "" {
		return fmt.Errorf("airtable.base_id is required")
	}
	if c.Airtable.Token == "" {
		return fmt.Errorf("airtable.token is required")
	}
	if c.Geocoding.APIKey == "" {
		return fmt.Errorf("geocoding.api_key is required")
	}
	if c.Search.MaxRadiusKm < c.Search.ZoneInitialRadiusKm ||
		c.Search.MaxRadiusKm < c.Search.CityInitialRadiusKm ||
		c.Search.MaxRadiusKm < c.Search.CoordinateInitialRadiusKm {
		return fmt.Errorf("search.max_radius_km (%g) must not be below any initial radius", c.Search.MaxRadiusKm)
	}
	if !c.Cache.Enabled {
		return nil
	}
	switch c.Cache.Driver {
	case "memory":
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\", \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

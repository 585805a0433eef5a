package config

import "time"

// Fallback coordinate used when the host has no usable location source.
const (
	DefaultFallbackLatitude  = 37.7749
	DefaultFallbackLongitude = -122.4194
)

// Config holds runtime settings for the Nearby Connect CLI.
//
// Device coordinates are pointers: nil means "no location hardware", which
// makes the client fall back to the fixed coordinate.
type Config struct {
	ServerBaseURL     string
	RequestTimeout    time.Duration
	DatabasePath      string
	DeviceLatitude    *float64
	DeviceLongitude   *float64
	FallbackLatitude  float64
	FallbackLongitude float64
	RadiusMiles       float64
	RefreshInterval   time.Duration
	LogLevel          string
	LogFile           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8001"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "nearby.db"
	c.FallbackLatitude = DefaultFallbackLatitude
	c.FallbackLongitude = DefaultFallbackLongitude
	c.RadiusMiles = 1.0
	c.RefreshInterval = 0
	c.LogLevel = "info"
	c.LogFile = "nearby.log"
}

// HasDevice reports whether device coordinates were configured.
func (c *Config) HasDevice() bool {
	return c.DeviceLatitude != nil && c.DeviceLongitude != nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

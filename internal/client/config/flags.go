package config

import (
	"flag"
	"math"
	"os"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see package doc).
// Only the flags handled here are passed to the FlagSet; parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-lat", "-lon", "-r", "-i", "-l", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	lat := fs.Float64("lat", math.NaN(), "device latitude")
	lon := fs.Float64("lon", math.NaN(), "device longitude")
	fs.Float64Var(&cfg.RadiusMiles, "r", cfg.RadiusMiles, "initial scan radius (in miles)")
	refreshInterval := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "auto-refresh interval (in seconds, 0 disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
	if !math.IsNaN(*lat) {
		cfg.DeviceLatitude = lat
	}
	if !math.IsNaN(*lon) {
		cfg.DeviceLongitude = lon
	}
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with NC_* environment variables. When -env names a
// dotenv file it is loaded first; variables already set in the process win.
// A missing or malformed value is ignored.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("NC_SERVER_BASE_URL"); ok {
		cfg.ServerBaseURL = v
	}
	if v, ok := lookupInt("NC_REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v, ok := os.LookupEnv("NC_DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookupFloat("NC_DEVICE_LATITUDE"); ok {
		cfg.DeviceLatitude = &v
	}
	if v, ok := lookupFloat("NC_DEVICE_LONGITUDE"); ok {
		cfg.DeviceLongitude = &v
	}
	if v, ok := lookupFloat("NC_RADIUS_MILES"); ok {
		cfg.RadiusMiles = v
	}
	if v, ok := lookupInt("NC_REFRESH_INTERVAL"); ok {
		cfg.RefreshInterval = time.Duration(v) * time.Second
	}
	if v, ok := os.LookupEnv("NC_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("NC_LOG_FILE"); ok {
		cfg.LogFile = v
	}
}

func lookupFloat(key string) (float64, bool) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookupInt(key string) (int, bool) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

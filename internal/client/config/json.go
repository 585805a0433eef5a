package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nearbyconnect/internal/flagx"
	"github.com/dmitrijs2005/nearbyconnect/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	ServerBaseURL   *string         `json:"server_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	DatabasePath    *string         `json:"database_path"`
	DeviceLatitude  *float64        `json:"device_latitude"`
	DeviceLongitude *float64        `json:"device_longitude"`
	RadiusMiles     *float64        `json:"radius_miles"`
	RefreshInterval *timex.Duration `json:"refresh_interval"`
	LogLevel        *string         `json:"log_level"`
	LogFile         *string         `json:"log_file"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Without the flag nothing happens. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.DeviceLatitude != nil {
		cfg.DeviceLatitude = jc.DeviceLatitude
	}
	if jc.DeviceLongitude != nil {
		cfg.DeviceLongitude = jc.DeviceLongitude
	}
	if jc.RadiusMiles != nil {
		cfg.RadiusMiles = *jc.RadiusMiles
	}
	if jc.RefreshInterval != nil {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
}

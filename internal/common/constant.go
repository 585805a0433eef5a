// Package common contains shared constants and sentinel errors used across
// Nearby Connect components.
package common

const (
	// AuthHeaderName is the HTTP header carrying the bearer token on
	// protected requests.
	AuthHeaderName = "Authorization"

	// BearerPrefix precedes the token inside AuthHeaderName.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// MinRadiusMiles and MaxRadiusMiles bound the scan radius; RadiusStep is
	// the slider granularity.
	MinRadiusMiles = 0.5
	MaxRadiusMiles = 5.0
	RadiusStep     = 0.1

	// MaxMessageLength is the message body limit, counted in runes.
	MaxMessageLength = 500
)

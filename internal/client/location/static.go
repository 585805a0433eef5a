package location

import (
	"context"
	"fmt"
)

// PromptFunc asks the user a yes/no question.
type PromptFunc func(ctx context.Context, question string) (bool, error)

// StaticDevice is the terminal's device: its coordinates come from
// configuration and permission is asked through prompt. Without coordinates
// the device reports itself unavailable.
type StaticDevice struct {
	lat, lon *float64
	prompt   PromptFunc
}

func NewStaticDevice(lat, lon *float64, prompt PromptFunc) *StaticDevice {
	return &StaticDevice{lat: lat, lon: lon, prompt: prompt}
}

func (d *StaticDevice) Available() bool {
	return d.lat != nil && d.lon != nil
}

// RequestPermission grants access without asking when no prompt is set.
func (d *StaticDevice) RequestPermission(ctx context.Context) (bool, error) {
	if d.prompt == nil {
		return true, nil
	}
	return d.prompt(ctx, "Allow Nearby Connect to use your location?")
}

func (d *StaticDevice) CurrentPosition(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if !d.Available() {
		return 0, 0, fmt.Errorf("no device coordinates configured")
	}
	return *d.lat, *d.lon, nil
}

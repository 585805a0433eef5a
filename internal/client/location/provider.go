// Package location resolves the device position for the radar. Capability
// detection happens once, in Detect; the rest of the client only sees a
// Provider.
package location

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// Default fallback coordinate used where no device position exists.
const (
	FallbackLatitude  = 37.7749
	FallbackLongitude = -122.4194
)

type Provider interface {
	Locate(ctx context.Context) (models.Location, error)
	Name() string
}

// Device is the host's location capability.
type Device interface {
	Available() bool
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// DeviceProvider reads the position from a real device after asking for
// permission on every call.
type DeviceProvider struct {
	device Device
}

func NewDeviceProvider(d Device) *DeviceProvider {
	return &DeviceProvider{device: d}
}

func (p *DeviceProvider) Name() string { return "device" }

// Locate returns common.ErrPermissionDenied when the user refuses.
func (p *DeviceProvider) Locate(ctx context.Context) (models.Location, error) {
	granted, err := p.device.RequestPermission(ctx)
	if err != nil {
		return models.Location{}, fmt.Errorf("request permission: %w", err)
	}
	if !granted {
		return models.Location{}, common.ErrPermissionDenied
	}

	lat, lon, err := p.device.CurrentPosition(ctx)
	if err != nil {
		return models.Location{}, fmt.Errorf("current position: %w", err)
	}
	return models.NewLocation(lat, lon), nil
}

// FixedProvider always answers with one coordinate and never fails.
type FixedProvider struct {
	loc models.Location
}

func NewFixedProvider(lat, lon float64) *FixedProvider {
	return &FixedProvider{loc: models.NewLocation(lat, lon)}
}

func (p *FixedProvider) Name() string { return "fixed" }

func (p *FixedProvider) Locate(context.Context) (models.Location, error) {
	return p.loc, nil
}

// Detect picks the provider for this host: the device when it supports
// location, otherwise the fixed fallback.
func Detect(d Device, fallback *FixedProvider) Provider {
	if fallback == nil {
		fallback = NewFixedProvider(FallbackLatitude, FallbackLongitude)
	}
	if d == nil || !d.Available() {
		return fallback
	}
	return NewDeviceProvider(d)
}

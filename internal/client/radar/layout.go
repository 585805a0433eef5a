package radar

import (
	"math"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/cryptox"
)

const (
	// angleStride separates successive users around the dial.
	angleStride = 72.0
	// maxJitter bounds the per-user angular offset, exclusive.
	maxJitter = 45.0
)

// jitter maps a user id onto [0, maxJitter). The value depends only on the
// id, so a blip keeps its angle across re-renders.
func jitter(id string) float64 {
	return cryptox.StableFraction(id) * maxJitter
}

// Layout places users on a radar of availablePixels radius scanning
// radiusMiles. Users past the edge are pinned to the boundary. Selection
// flags are left false; see applySelection.
func Layout(users []models.User, radiusMiles, availablePixels float64) []models.Blip {
	blips := make([]models.Blip, 0, len(users))
	for i, u := range users {
		blips = append(blips, models.Blip{
			ID:            u.ID,
			Name:          u.Name,
			DistanceMiles: u.DistanceMiles,
			Angle:         math.Mod(float64(i)*angleStride+jitter(u.ID), 360),
			Radius:        scale(u.DistanceMiles, radiusMiles, availablePixels),
		})
	}
	return blips
}

func scale(distance, radiusMiles, availablePixels float64) float64 {
	if radiusMiles <= 0 || availablePixels <= 0 || distance <= 0 {
		return 0
	}
	return math.Min(distance/radiusMiles*availablePixels, availablePixels)
}

// applySelection returns blips with Selected set on selectedID only.
func applySelection(blips []models.Blip, selectedID string) []models.Blip {
	out := make([]models.Blip, len(blips))
	for i, b := range blips {
		b.Selected = selectedID != "" && b.ID == selectedID
		out[i] = b
	}
	return out
}

// Point is a position on the drawing surface; Y grows downwards.
type Point struct {
	X, Y float64
}

// Project converts a blip to surface coordinates around centre. Angle 0
// points up and angles grow clockwise.
func Project(b models.Blip, centre Point) Point {
	rad := b.Angle * math.Pi / 180
	return Point{
		X: centre.X + b.Radius*math.Sin(rad),
		Y: centre.Y - b.Radius*math.Cos(rad),
	}
}

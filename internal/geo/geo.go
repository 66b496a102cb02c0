package geo

import (
	"context"
	"math"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
)

// EarthRadiusMiles is the mean Earth radius used by DistanceMiles
const EarthRadiusMiles = 3959

// DistanceMiles returns the great-circle distance between a and b rounded to the nearest mile
func DistanceMiles(a, b models.Coordinates) int {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h just outside [0, 1] near the antipode
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return int(math.Round(EarthRadiusMiles * c))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Provider supplies the device's current position
type Provider interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context) (models.Coordinates, error)

// Locate calls f
func (f ProviderFunc) Locate(ctx context.Context) (models.Coordinates, error) {
	return f(ctx)
}

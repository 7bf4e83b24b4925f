// Package layout contains the force model and the iterative simulation
// engine that arranges nodes on the drawing surface.
package layout

import "math"

// Scale constants relative to min(viewport)/1000.
const (
	linkDistancePerUnit = 300.0
	circleRadiusPerUnit = 80.0
	chargePerUnit       = -60.0
)

// Config holds every size-dependent constant of the layout. It is derived
// from the viewport, never authored, and recomputed wholesale on resize.
type Config struct {
	LinkDistanceUnit float64
	ChargeStrength   float64 // negative = repulsive
	CircleRadiusUnit float64
}

// ComputeConfig derives the layout constants from the viewport size.
// A degenerate viewport (zero on either axis) yields zero-magnitude
// constants: forces collapse and motion freezes, but nothing fails.
func ComputeConfig(viewportWidth, viewportHeight float64) Config {
	sizeFactor := math.Min(viewportWidth, viewportHeight) / 1000
	if sizeFactor < 0 || math.IsNaN(sizeFactor) {
		sizeFactor = 0
	}
	return Config{
		LinkDistanceUnit: linkDistancePerUnit * sizeFactor,
		ChargeStrength:   chargePerUnit * sizeFactor,
		CircleRadiusUnit: circleRadiusPerUnit * sizeFactor,
	}
}

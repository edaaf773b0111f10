package cec

import (
	"fmt"
	"math"
)

const (
	metresToFeet = 3.28

	// usableWallFraction discounts the estimated perimeter for doors,
	// windows, closets and other openings that break up receptacle walls.
	usableWallFraction = 0.70

	// minSpacingAreaSqFt is the floor applied to the reported area before
	// estimating perimeter; plan-reader output below this is noise.
	minSpacingAreaSqFt = 50.0

	// defaultReceptacleCap bounds the spacing-derived count for a single
	// room. Hallways use a lower cap because their 4.5 m rule already
	// produces sparse placement.
	defaultReceptacleCap = 8
	hallwayReceptacleCap = 3
)

// ReceptacleCountFromArea estimates the receptacle count needed to satisfy
// a wall spacing rule for a room of the given floor area.
//
// The room is modelled as a square: perimeter = 4 * sqrt(area), of which
// usableWallFraction is usable wall. Each receptacle covers twice the
// spacing distance (the rule bounds the distance from any point to the
// nearest receptacle, so one device serves spacingM on either side). The
// result is capped per room and never falls below minimum.
//
// A non-positive spacingM means no spacing rule applies and the catalogue
// minimum is returned as-is. Invalid areas return ErrInvalidInput.
func ReceptacleCountFromArea(areaSqFt, spacingM float64, minimum int) (int, error) {
	if math.IsNaN(areaSqFt) || math.IsInf(areaSqFt, 0) || areaSqFt < 0 {
		return 0, fmt.Errorf("%w: area %v sq ft", ErrInvalidInput, areaSqFt)
	}
	if minimum < 0 {
		return 0, fmt.Errorf("%w: minimum %d", ErrInvalidInput, minimum)
	}
	if spacingM <= 0 {
		return minimum, nil
	}

	area := math.Max(areaSqFt, minSpacingAreaSqFt)
	usableWallFt := 4 * math.Sqrt(area) * usableWallFraction
	coveragePerDeviceFt := 2 * spacingM * metresToFeet
	computed := int(math.Ceil(usableWallFt / coveragePerDeviceFt))

	limit := defaultReceptacleCap
	if spacingM >= hallwaySpacingM {
		limit = hallwayReceptacleCap
	}
	if computed > limit {
		computed = limit
	}
	if computed < minimum {
		computed = minimum
	}
	return computed, nil
}

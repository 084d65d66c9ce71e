// Public domain.

// Package astro, stuff generally useful in astronomy.
//
// Functions here are pure.  They take and return angles as unit.Angle and
// unit.RA and linear quantities in whatever unit the caller supplies.
package astro

import (
	"fmt"
	"math"
)

// DistanceUnit names the unit of distances returned by ParallaxDistance
// when parallax is given in milliarcseconds, as it is in Gaia catalogs.
// The reciprocal of a parallax in arc seconds is parsecs, so the reciprocal
// of milliarcseconds is kiloparsecs.
const DistanceUnit = "kpc"

// DomainError reports a parallax that cannot be converted to a distance.
type DomainError struct {
	Index    int // position in the input sequence, 0 for single values
	Parallax float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("parallax %g at index %d not strictly positive",
		e.Parallax, e.Index)
}

// ParallaxDistance computes distance as the reciprocal of parallax.
//
// Parallax must be strictly positive.  Zero, negative, and NaN values
// return a *DomainError.  Callers are expected to exclude such values
// before calling; nothing is filtered here.
func ParallaxDistance(parallax float64) (float64, error) {
	// ! > catches NaN along with zero and negative values
	if !(parallax > 0) {
		return 0, &DomainError{Parallax: parallax}
	}
	return 1 / parallax, nil
}

// ParallaxDistances converts a sequence of parallaxes elementwise.
//
// The result has the same length and order as the input.  The first value
// that is not strictly positive fails the whole call.
func ParallaxDistances(parallax []float64) ([]float64, error) {
	d := make([]float64, len(parallax))
	for i, p := range parallax {
		if !(p > 0) {
			return nil, &DomainError{Index: i, Parallax: p}
		}
		d[i] = 1 / p
	}
	return d, nil
}

// IsFinite reports whether all values are neither NaN nor infinite.
func IsFinite(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

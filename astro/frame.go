// Public domain.

package astro

import (
	"math"

	"github.com/soniakeys/coord"
	mcoord "github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"
)

// J2000 galactic frame.  North galactic pole in equatorial coordinates
// and the galactic longitude of the north celestial pole.
var (
	galPoleRA  = unit.RAFromDeg(192.85948)
	galPoleDec = unit.AngleFromDeg(27.12825)
	galNCPLon  = unit.AngleFromDeg(122.93192)
)

// EqToCart converts spherical equatorial coordinates to a Cartesian vector
// with right-handed axes centered at the observer.  X points to ra = 0 on
// the equator, Z to the north celestial pole.
//
// The vector has the same unit as dist.  Nothing is rescaled.
func EqToCart(ra unit.RA, dec unit.Angle, dist float64) coord.Cart {
	sra, cra := math.Sincos(ra.Rad())
	sdec, cdec := math.Sincos(dec.Rad())
	return coord.Cart{
		X: dist * cdec * cra,
		Y: dist * cdec * sra,
		Z: dist * sdec,
	}
}

// CartToEq is the inverse of EqToCart.
//
// RA is returned in [0, 2π).  For the zero vector all results are zero.
func CartToEq(c coord.Cart) (ra unit.RA, dec unit.Angle, dist float64) {
	dist = math.Sqrt(c.Square())
	if dist == 0 {
		return
	}
	ra = unit.RA(wrap(math.Atan2(c.Y, c.X)))
	dec = unit.Angle(math.Asin(clamp(c.Z / dist)))
	return
}

// EqToGal rotates J2000 equatorial coordinates into galactic longitude
// and latitude.
//
// Results: l in [0, 2π), b in [-π/2, π/2].
func EqToGal(ra unit.RA, dec unit.Angle) (l, b unit.Angle) {
	sdra, cdra := math.Sincos(ra.Rad() - galPoleRA.Rad())
	sdec, cdec := math.Sincos(dec.Rad())
	sdp, cdp := math.Sincos(galPoleDec.Rad())
	b = unit.Angle(math.Asin(clamp(sdec*sdp + cdec*cdp*cdra)))
	l = unit.Angle(wrap(galNCPLon.Rad() -
		math.Atan2(cdec*sdra, sdec*cdp-cdec*sdp*cdra)))
	return
}

// EqToGalB1950 rotates equatorial coordinates referred to the standard
// equinox of B1950.0 into galactic coordinates, using the FK4 pole.
//
// Results are normalized as for EqToGal.
func EqToGalB1950(ra unit.RA, dec unit.Angle) (l, b unit.Angle) {
	l, b = mcoord.EqToGal(ra, dec)
	return unit.Angle(wrap(l.Rad())), b
}

// wrap returns a in [0, 2π).
func wrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// a tiny negative input can round up to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// clamp keeps an argument to asin in its domain against rounding.
func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}

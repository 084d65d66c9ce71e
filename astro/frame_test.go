// Public domain.

package astro_test

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/comove/astro"
)

func TestEqToCartAxes(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64 // degrees
		dist    float64
		x, y, z float64
	}{
		{"vernal equinox", 0, 0, 10, 10, 0, 0},
		{"ra 90", 90, 0, 2, 0, 2, 0},
		{"ra 180", 180, 0, 3, -3, 0, 0},
		{"north pole", 0, 90, 5, 0, 0, 5},
		{"south pole", 45, -90, 5, 0, 0, -5},
		{"zero distance", 123, 45, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := astro.EqToCart(unit.RAFromDeg(tt.ra), unit.AngleFromDeg(tt.dec), tt.dist)
			assert.InDelta(t, tt.x, c.X, 1e-12)
			assert.InDelta(t, tt.y, c.Y, 1e-12)
			assert.InDelta(t, tt.z, c.Z, 1e-12)
		})
	}
}

func TestCartRoundTrip(t *testing.T) {
	for ra := 0.; ra < 360; ra += 29.5 {
		for dec := -85.; dec <= 85; dec += 17 {
			for _, d := range []float64{.01, 1, 3.7, 250} {
				c := astro.EqToCart(unit.RAFromDeg(ra), unit.AngleFromDeg(dec), d)
				gra, gdec, gd := astro.CartToEq(c)
				assert.InDelta(t, ra, gra.Deg(), 1e-9)
				assert.InDelta(t, dec, gdec.Deg(), 1e-9)
				assert.InDelta(t, d, gd, d*1e-12)
			}
		}
	}
}

func TestCartToEqZero(t *testing.T) {
	ra, dec, d := astro.CartToEq(astro.EqToCart(1, 1, 0))
	assert.Zero(t, ra)
	assert.Zero(t, dec)
	assert.Zero(t, d)
}

func TestEqToGal(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
		l, b    float64
	}{
		// the frame constants themselves
		{"north celestial pole", 0, 90, 122.93192, 27.12825},
		{"galactic center", 266.40498829, -28.93617776, 0, 0},
		{"vernal equinox", 0, 0, 96.33727, -60.18855},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, b := astro.EqToGal(unit.RAFromDeg(tt.ra), unit.AngleFromDeg(tt.dec))
			assert.InDelta(t, 0, angleDiff(tt.l, l.Deg()), 1e-4)
			assert.InDelta(t, tt.b, b.Deg(), 1e-4)
		})
	}
}

func TestEqToGalPole(t *testing.T) {
	_, b := astro.EqToGal(unit.RAFromDeg(192.85948), unit.AngleFromDeg(27.12825))
	assert.InDelta(t, 90, b.Deg(), 1e-5)
}

func TestEqToGalRanges(t *testing.T) {
	for ra := 0.; ra < 360; ra += 7.3 {
		for dec := -90.; dec <= 90; dec += 4.5 {
			for _, f := range []func(unit.RA, unit.Angle) (unit.Angle, unit.Angle){
				astro.EqToGal, astro.EqToGalB1950,
			} {
				l, b := f(unit.RAFromDeg(ra), unit.AngleFromDeg(dec))
				assert.GreaterOrEqual(t, l.Deg(), 0.)
				assert.Less(t, l.Deg(), 360.)
				assert.GreaterOrEqual(t, b.Deg(), -90.)
				assert.LessOrEqual(t, b.Deg(), 90.)
			}
		}
	}
}

func TestEqToGalB1950Pole(t *testing.T) {
	// FK4 north galactic pole
	_, b := astro.EqToGalB1950(unit.RAFromDeg(192.25), unit.AngleFromDeg(27.4))
	assert.InDelta(t, 90, b.Deg(), 1e-5)
}

// angleDiff returns the signed difference a - b in degrees, in (-180, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

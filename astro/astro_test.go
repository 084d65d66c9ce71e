// Public domain.

package astro_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/comove/astro"
)

func ExampleParallaxDistance() {
	d, err := astro.ParallaxDistance(4)
	fmt.Println(d, astro.DistanceUnit, err)
	// Output:
	// 0.25 kpc <nil>
}

func ExampleEqToCart() {
	c := astro.EqToCart(0, 0, 10)
	fmt.Printf("%.1f %.1f %.1f\n", c.X, c.Y, c.Z)
	// Output:
	// 10.0 0.0 0.0
}

func TestParallaxDistanceReciprocal(t *testing.T) {
	for _, p := range []float64{1e-3, .1, .5, 1, 2.5, 7, 1234.5} {
		d, err := astro.ParallaxDistance(p)
		require.NoError(t, err)
		assert.Equal(t, 1/p, d)
	}
	// round trip through a distance
	for _, d := range []float64{.25, .5, 1, 2, 4, 8} {
		got, err := astro.ParallaxDistance(1 / d)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestParallaxDistanceDomain(t *testing.T) {
	for _, p := range []float64{0, -1, math.Copysign(0, -1), math.NaN()} {
		_, err := astro.ParallaxDistance(p)
		var de *astro.DomainError
		require.True(t, errors.As(err, &de), "parallax %g", p)
	}
}

func TestParallaxDistances(t *testing.T) {
	d, err := astro.ParallaxDistances([]float64{1, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, .5, .25}, d)

	d, err = astro.ParallaxDistances(nil)
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = astro.ParallaxDistances([]float64{1, 2, 0, 4})
	var de *astro.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Index)
	assert.Equal(t, 0., de.Parallax)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, astro.IsFinite())
	assert.True(t, astro.IsFinite(1, -2, 0))
	assert.False(t, astro.IsFinite(1, math.NaN()))
	assert.False(t, astro.IsFinite(math.Inf(-1)))
}

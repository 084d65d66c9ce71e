// Public domain.

package synth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/comove/internal/synth"
)

func TestCatalogRepeatable(t *testing.T) {
	a := synth.Catalog(synth.Hyades)
	b := synth.Catalog(synth.Hyades)
	assert.Equal(t, a, b)

	s := synth.Hyades
	s.Seed++
	assert.NotEqual(t, a, synth.Catalog(s))
}

func TestCatalogLayout(t *testing.T) {
	rows := synth.Catalog(synth.Hyades)
	require.Len(t, rows, 200)
	assert.Equal(t, "g0-0", rows[0].ID)
	assert.Equal(t, "g1-0", rows[60].ID)
	assert.Equal(t, "f-0", rows[100].ID)
	for _, r := range rows {
		assert.Greater(t, r.Parallax, 0.)
		assert.GreaterOrEqual(t, r.RA, 0.)
		assert.Less(t, r.RA, 360.)
		assert.LessOrEqual(t, r.Dec, 90.)
		assert.GreaterOrEqual(t, r.Dec, -90.)
		if strings.HasPrefix(r.ID, "g0-") {
			assert.InDelta(t, 101, r.PMRA, 2)
			assert.InDelta(t, 21.5, r.Parallax, 2)
		}
	}
}

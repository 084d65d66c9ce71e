// Public domain.

// Package synth generates synthetic star catalogs: co-moving groups
// scattered over a uniform field population.
//
// Generation is repeatable.  The same Spec and seed always produce the
// same rows in the same order.
package synth

import (
	"fmt"
	"math"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/comove/internal/catalog"
)

// Group describes one co-moving group.
type Group struct {
	N           int
	RA, Dec     float64 // center, degrees
	PMRA, PMDec float64 // mean proper motion, mas/yr
	Parallax    float64 // mean parallax, mas
	Spread      float64 // 1-sigma scatter of every column, in its own unit
}

// Spec describes a catalog.
type Spec struct {
	Groups []Group
	Field  int // number of field stars
	Seed   uint64
}

// Hyades is a small default spec with two compact groups in a sparse field.
var Hyades = Spec{
	Groups: []Group{
		{N: 60, RA: 66.7, Dec: 16, PMRA: 101, PMDec: -28, Parallax: 21.5, Spread: .3},
		{N: 40, RA: 56.8, Dec: 24.1, PMRA: 20, PMDec: -45, Parallax: 7.4, Spread: .2},
	},
	Field: 100,
	Seed:  3,
}

// Catalog generates rows for s.  Group members come first, group by group,
// then field stars.  Row IDs are "g<group>-<n>" and "f-<n>".
func Catalog(s Spec) []catalog.Row {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(s.Seed)
	n := s.Field
	for _, g := range s.Groups {
		n += g.N
	}
	rows := make([]catalog.Row, 0, n)
	for gx, g := range s.Groups {
		for i := 0; i < g.N; i++ {
			rows = append(rows, catalog.Row{
				ID:       fmt.Sprintf("g%d-%d", gx, i),
				RA:       g.RA + g.Spread*rnd.NormFloat64(),
				Dec:      g.Dec + g.Spread*rnd.NormFloat64(),
				PMRA:     g.PMRA + g.Spread*rnd.NormFloat64(),
				PMDec:    g.PMDec + g.Spread*rnd.NormFloat64(),
				Parallax: math.Abs(g.Parallax + g.Spread*rnd.NormFloat64()),
			})
		}
	}
	for i := 0; i < s.Field; i++ {
		rows = append(rows, catalog.Row{
			ID:  fmt.Sprintf("f-%d", i),
			RA:  360 * rnd.Float64(),
			Dec: math.Asin(2*rnd.Float64()-1) * 180 / math.Pi,
			// field stars move fast and in every direction
			PMRA:     200 * (rnd.Float64() - .5),
			PMDec:    200 * (rnd.Float64() - .5),
			Parallax: .5 + 30*rnd.Float64(),
		})
	}
	return rows
}

// Public domain.

package pipeline

import (
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/comove/astro"
	"github.com/soniakeys/comove/internal/catalog"
	"github.com/soniakeys/comove/internal/dbscan"
)

// ClusterSummary describes the members of one cluster.
type ClusterSummary struct {
	Cluster     int
	Members     int
	RA          unit.RA    // mean direction
	Dec         unit.Angle // mean direction
	PMRA, PMDec float64    // mean proper motion, mas/yr
	Distance    float64    // mean distance
	GalL, GalB  unit.Angle // mean direction, galactic
}

// Summarize returns a summary for each cluster in stars, ordered by
// cluster id.  Noise is not summarized.
//
// Mean directions are of unit vectors, so clusters straddling RA 0 or
// galactic longitude 0 are handled.
func Summarize(stars []catalog.Star) []ClusterSummary {
	n := 0
	for i := range stars {
		if stars[i].Cluster >= n {
			n = stars[i].Cluster + 1
		}
	}
	type acc struct {
		members     int
		eq, gal     coord.Cart
		pmra, pmdec float64
		dist        float64
	}
	accs := make([]acc, n)
	for i := range stars {
		s := &stars[i]
		if s.Cluster == dbscan.Noise {
			continue
		}
		a := &accs[s.Cluster]
		a.members++
		eq := astro.EqToCart(unit.RAFromDeg(s.RA), unit.AngleFromDeg(s.Dec), 1)
		a.eq.Add(&a.eq, &eq)
		gal := astro.EqToCart(unit.RAFromDeg(s.GalL), unit.AngleFromDeg(s.GalB), 1)
		a.gal.Add(&a.gal, &gal)
		a.pmra += s.PMRA
		a.pmdec += s.PMDec
		a.dist += s.Distance
	}
	sums := make([]ClusterSummary, 0, n)
	for c, a := range accs {
		if a.members == 0 {
			continue
		}
		m := float64(a.members)
		cs := ClusterSummary{
			Cluster:  c,
			Members:  a.members,
			PMRA:     a.pmra / m,
			PMDec:    a.pmdec / m,
			Distance: a.dist / m,
		}
		cs.RA, cs.Dec, _ = astro.CartToEq(a.eq)
		l, b, _ := astro.CartToEq(a.gal)
		cs.GalL, cs.GalB = unit.Angle(l), b
		sums = append(sums, cs)
	}
	return sums
}

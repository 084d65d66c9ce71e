// Public domain.

// Package dbscan implements density-based spatial clustering of
// applications with noise over rows of a numeric matrix.
//
// Distance is Euclidean.  A point's eps-neighborhood includes the point
// itself and every point at distance <= Eps.  A point with at least
// MinSamples points in its neighborhood is a core point.  Clusters are the
// sets of points density-reachable from core points; all other points are
// noise, labeled Noise.
//
// Cluster ids are assigned in order of discovery while scanning rows in
// input order, so the same input in the same order always yields the same
// labels.  A border point reachable from more than one cluster is labeled
// with the first cluster that reaches it.
package dbscan

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Noise is the label of points not density-reachable from any core point.
const Noise = -1

// Params configures a clustering run.
type Params struct {
	Eps        float64 // neighborhood radius
	MinSamples int     // neighborhood size, self included, to be a core point
}

// InvalidParameterError reports an out-of-range clustering parameter.
type InvalidParameterError struct {
	Param string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %g", e.Param, e.Value)
}

// Validate checks Eps > 0 and MinSamples >= 1.
func (p Params) Validate() error {
	// ! > catches NaN
	if !(p.Eps > 0) || math.IsInf(p.Eps, 1) {
		return &InvalidParameterError{"eps", p.Eps}
	}
	if p.MinSamples < 1 {
		return &InvalidParameterError{"min_samples", float64(p.MinSamples)}
	}
	return nil
}

// Result of a clustering run.
type Result struct {
	Labels   []int  // per row: cluster id 0..Clusters-1, or Noise
	Core     []bool // per row: true for core points
	Clusters int    // number of clusters
	Noise    int    // number of rows labeled Noise
}

// Distinct returns the number of distinct labels in r.Labels, counting
// Noise as a label when present.
func (r *Result) Distinct() int {
	if r.Noise > 0 {
		return r.Clusters + 1
	}
	return r.Clusters
}

// Option configures Cluster.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers sets the number of goroutines used for neighborhood queries.
// Values < 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Cluster runs DBSCAN over the rows of m.
//
// An m with no rows can be passed as nil and yields an empty result.
// Parameters are validated first; an invalid Params returns an
// *InvalidParameterError.
func Cluster(m mat.Matrix, p Params, opts ...Option) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	var rows [][]float64
	if m != nil {
		rows = rowsOf(m)
	}
	if len(rows) == 0 {
		return &Result{Labels: []int{}, Core: []bool{}}, nil
	}

	nbrs, err := newIndex(rows).neighborhoods(p.Eps, o.workers)
	if err != nil {
		return nil, err
	}
	return label(nbrs, p.MinSamples), nil
}

// label assigns cluster ids given the neighborhood of each point.
//
// Core points are identified from neighborhood sizes.  Then a single pass
// over points in input order starts a new cluster at each core point not
// yet labeled and expands it breadth first through core points.
func label(nbrs [][]int, minSamples int) *Result {
	n := len(nbrs)
	r := &Result{
		Labels: make([]int, n),
		Core:   make([]bool, n),
	}
	for i, nb := range nbrs {
		r.Labels[i] = Noise
		r.Core[i] = len(nb) >= minSamples
	}
	var queue []int
	for i := range nbrs {
		if r.Labels[i] != Noise || !r.Core[i] {
			continue
		}
		id := r.Clusters
		r.Clusters++
		r.Labels[i] = id
		queue = append(queue[:0], i)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, q := range nbrs[p] {
				if r.Labels[q] != Noise {
					continue
				}
				r.Labels[q] = id
				if r.Core[q] {
					queue = append(queue, q)
				}
			}
		}
	}
	for _, l := range r.Labels {
		if l == Noise {
			r.Noise++
		}
	}
	return r
}

// rowsOf returns the rows of m as slices.  For a *mat.Dense the slices
// share its backing data.
func rowsOf(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	if d, ok := m.(mat.RawRowViewer); ok {
		for i := range rows {
			rows[i] = d.RawRowView(i)
		}
		return rows
	}
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// Public domain.

package dbscan

import (
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a row of the input matrix that remembers its row number, so
// the tree is free to reorder points while building.
type point struct {
	row int
	v   []float64
}

// Compare satisfies kdtree.Comparable.
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.v[d] - c.(point).v[d]
}

// Dims satisfies kdtree.Comparable.
func (p point) Dims() int { return len(p.v) }

// Distance returns the squared Euclidean distance, as kdtree requires.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point).v
	var sum float64
	for d, x := range p.v {
		x -= q[d]
		sum += x * x
	}
	return sum
}

// points satisfies kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{p, d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for pivot selection.
type plane struct {
	points
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].v[p.Dim] < p.points[j].v[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// index answers eps-neighborhood queries for a fixed set of rows.
type index struct {
	rows []point // in input order
	tree *kdtree.Tree
}

func newIndex(rows [][]float64) *index {
	x := &index{rows: make([]point, len(rows))}
	for i, v := range rows {
		x.rows[i] = point{i, v}
	}
	// kdtree.New reorders its argument
	x.tree = kdtree.New(append(points(nil), x.rows...), false)
	return x
}

// neighborhood returns the rows within eps of row i, self included, in
// ascending row order.
func (x *index) neighborhood(i int, eps float64) []int {
	keep := kdtree.NewDistKeeper(eps * eps)
	x.tree.NearestSet(keep, x.rows[i])
	nb := make([]int, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		nb = append(nb, c.Comparable.(point).row)
	}
	sort.Ints(nb)
	return nb
}

// neighborhoods queries every row, splitting rows among workers.  Each
// worker writes only its own rows of the result.
func (x *index) neighborhoods(eps float64, workers int) ([][]int, error) {
	nbrs := make([][]int, len(x.rows))
	chunk := (len(x.rows) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(x.rows); start += chunk {
		end := min(start+chunk, len(x.rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				nbrs[i] = x.neighborhood(i, eps)
			}
			return nil
		})
	}
	return nbrs, g.Wait()
}

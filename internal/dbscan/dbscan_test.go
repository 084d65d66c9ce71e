// Public domain.

package dbscan_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/comove/internal/dbscan"
	"github.com/soniakeys/comove/internal/synth"
)

func TestClusterTwoGroupsAndOutlier(t *testing.T) {
	m := mat.NewDense(7, 2, []float64{
		0, 0,
		0, .1,
		.1, 0,
		5, 5,
		5, 5.1,
		5.1, 5,
		20, 20,
	})
	p := dbscan.Params{Eps: .5, MinSamples: 2}
	r, err := dbscan.Cluster(m, p)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, dbscan.Noise}, r.Labels)
	assert.Equal(t, []bool{true, true, true, true, true, true, false}, r.Core)
	assert.Equal(t, 2, r.Clusters)
	assert.Equal(t, 1, r.Noise)
	assert.Equal(t, 3, r.Distinct())

	again, err := dbscan.Cluster(m, p)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestClusterBorderFirstReached(t *testing.T) {
	// 9 is within eps of cores 0 and 18 but is not itself core.
	xs := []float64{-2, -1, 0, 9, 18, 19, 20}
	p := dbscan.Params{Eps: 9, MinSamples: 4}

	r, err := dbscan.Cluster(mat.NewDense(len(xs), 1, xs), p)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1}, r.Labels)
	assert.Equal(t, []bool{false, false, true, false, true, false, false}, r.Core)
	assert.Zero(t, r.Noise)
	assert.Equal(t, 2, r.Distinct())

	// reversed, 18 is the first core point scanned and claims 9
	rev := make([]float64, len(xs))
	for i, x := range xs {
		rev[len(xs)-1-i] = x
	}
	r, err = dbscan.Cluster(mat.NewDense(len(rev), 1, rev), p)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1}, r.Labels)
}

func TestClusterInclusiveEps(t *testing.T) {
	// points exactly eps apart are neighbors
	m := mat.NewDense(2, 1, []float64{0, 1})
	r, err := dbscan.Cluster(m, dbscan.Params{Eps: 1, MinSamples: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, r.Labels)
}

func TestClusterMinSamplesOne(t *testing.T) {
	// every point is core, isolated points are singleton clusters
	m := mat.NewDense(3, 1, []float64{0, 10, 20})
	r, err := dbscan.Cluster(m, dbscan.Params{Eps: 1, MinSamples: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, r.Labels)
	assert.Zero(t, r.Noise)
}

func TestClusterNoiseNearSparsePoints(t *testing.T) {
	// 10 and 11 are neighbors but neither is core, so both stay noise
	m := mat.NewDense(6, 1, []float64{0, .5, 1, 10, 11, 30})
	r, err := dbscan.Cluster(m, dbscan.Params{Eps: 1, MinSamples: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, -1, -1, -1}, r.Labels)
	assert.Equal(t, []bool{true, true, true, false, false, false}, r.Core)
	assert.Equal(t, 3, r.Noise)
}

func TestClusterAllNoise(t *testing.T) {
	m := mat.NewDense(3, 1, []float64{0, 10, 20})
	r, err := dbscan.Cluster(m, dbscan.Params{Eps: 1, MinSamples: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{-1, -1, -1}, r.Labels)
	assert.Zero(t, r.Clusters)
	assert.Equal(t, 3, r.Noise)
	assert.Equal(t, 1, r.Distinct())
}

func TestClusterEmpty(t *testing.T) {
	r, err := dbscan.Cluster(nil, dbscan.Params{Eps: .5, MinSamples: 5})
	require.NoError(t, err)
	assert.Empty(t, r.Labels)
	assert.NotNil(t, r.Labels)
	assert.Zero(t, r.Clusters)
	assert.Zero(t, r.Distinct())
}

func TestClusterInvalidParams(t *testing.T) {
	m := mat.NewDense(1, 1, []float64{0})
	for _, tc := range []struct {
		name  string
		p     dbscan.Params
		param string
	}{
		{"zero eps", dbscan.Params{Eps: 0, MinSamples: 1}, "eps"},
		{"negative eps", dbscan.Params{Eps: -1, MinSamples: 1}, "eps"},
		{"NaN eps", dbscan.Params{Eps: math.NaN(), MinSamples: 1}, "eps"},
		{"Inf eps", dbscan.Params{Eps: math.Inf(1), MinSamples: 1}, "eps"},
		{"zero min", dbscan.Params{Eps: 1, MinSamples: 0}, "min_samples"},
		{"negative min", dbscan.Params{Eps: 1, MinSamples: -3}, "min_samples"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := dbscan.Cluster(m, tc.p)
			assert.Nil(t, r)
			var pe *dbscan.InvalidParameterError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.param, pe.Param)
		})
	}
}

func TestClusterWorkers(t *testing.T) {
	m := hyades()
	p := dbscan.Params{Eps: 2, MinSamples: 5}
	one, err := dbscan.Cluster(m, p, dbscan.WithWorkers(1))
	require.NoError(t, err)
	many, err := dbscan.Cluster(m, p, dbscan.WithWorkers(7))
	require.NoError(t, err)
	assert.Equal(t, one, many)
	assert.Equal(t, 2, one.Clusters)
}

// Non-core points labeled with a cluster must have a core neighbor in that
// cluster.  Core neighbors always share a label.  Noise has no core
// neighbor.
func TestClusterProperties(t *testing.T) {
	m := hyades()
	p := dbscan.Params{Eps: 2, MinSamples: 5}
	r, err := dbscan.Cluster(m, p)
	require.NoError(t, err)
	n, _ := m.Dims()
	nb := func(i, j int) bool {
		d := mat.NewVecDense(5, nil)
		d.SubVec(m.RowView(i), m.RowView(j))
		return mat.Norm(d, 2) <= p.Eps
	}
	for i := 0; i < n; i++ {
		count := 0
		hasCore := false
		for j := 0; j < n; j++ {
			if !nb(i, j) {
				continue
			}
			count++
			if r.Core[j] && r.Labels[j] == r.Labels[i] {
				hasCore = true
			}
			if r.Core[i] && r.Core[j] {
				assert.Equal(t, r.Labels[i], r.Labels[j], "core %d, %d", i, j)
			}
			if r.Labels[i] == dbscan.Noise {
				assert.False(t, r.Core[j], "noise %d has core neighbor %d", i, j)
			}
		}
		assert.Equal(t, count >= p.MinSamples, r.Core[i], "row %d", i)
		if r.Labels[i] != dbscan.Noise {
			assert.True(t, hasCore, "row %d", i)
		}
	}
}

func hyades() *mat.Dense {
	rows := synth.Catalog(synth.Hyades)
	m := mat.NewDense(len(rows), 5, nil)
	for i, r := range rows {
		m.SetRow(i, []float64{r.RA, r.Dec, r.PMRA, r.PMDec, r.Parallax})
	}
	return m
}

func BenchmarkCluster(b *testing.B) {
	s := synth.Hyades
	s.Field = 5000
	rows := synth.Catalog(s)
	m := mat.NewDense(len(rows), 5, nil)
	for i, r := range rows {
		m.SetRow(i, []float64{r.RA, r.Dec, r.PMRA, r.PMDec, r.Parallax})
	}
	p := dbscan.Params{Eps: 2, MinSamples: 5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dbscan.Cluster(m, p); err != nil {
			b.Fatal(err)
		}
	}
}

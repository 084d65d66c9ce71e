// Public domain.

// Package pipeline turns catalog rows into clustered, enriched stars.
//
// A run computes distances from parallax, standardizes the selected
// features, clusters with DBSCAN, and adds Cartesian and galactic
// coordinates.  Rows that cannot be processed are dropped and counted
// before any computation.  A run either returns a complete result or a
// *StageError; it never returns partial results.
package pipeline

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/comove/astro"
	"github.com/soniakeys/comove/internal/catalog"
	"github.com/soniakeys/comove/internal/dbscan"
	"github.com/soniakeys/comove/internal/metrics"
	"github.com/soniakeys/comove/internal/scale"
	"github.com/soniakeys/unit"
)

// Stage names, as reported by StageError and metrics.
const (
	StageDistance  = "distance"
	StageNormalize = "normalize"
	StageCluster   = "cluster"
	StageTransform = "transform"
)

// StageError identifies the stage of a failed run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Galactic frames.
const (
	FrameJ2000 = "j2000"
	FrameB1950 = "b1950"
)

// Config configures a Pipeline.
type Config struct {
	Eps        float64
	MinSamples int
	Features   []string // clustering features, DefaultFeatures if empty
	Frame      string   // galactic frame, FrameJ2000 if empty
	Workers    int      // < 1 for GOMAXPROCS
}

// DefaultFeatures are the clustering features used when Config.Features
// is empty.
var DefaultFeatures = []string{"ra", "dec", "pmra", "pmdec", "distance"}

// feature extractors by name
var features = map[string]func(*catalog.Star) float64{
	"ra":       func(s *catalog.Star) float64 { return s.RA },
	"dec":      func(s *catalog.Star) float64 { return s.Dec },
	"pmra":     func(s *catalog.Star) float64 { return s.PMRA },
	"pmdec":    func(s *catalog.Star) float64 { return s.PMDec },
	"parallax": func(s *catalog.Star) float64 { return s.Parallax },
	"distance": func(s *catalog.Star) float64 { return s.Distance },
}

// FeatureNames returns the names valid in Config.Features, sorted.
func FeatureNames() []string {
	names := make([]string, 0, len(features))
	for n := range features {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Drops counts rows excluded from a run, by reason.
type Drops struct {
	Missing   int // some input value missing
	Parallax  int // parallax not positive
	NonFinite int // some input or derived value infinite
}

// Total returns the number of dropped rows.
func (d Drops) Total() int { return d.Missing + d.Parallax + d.NonFinite }

// Result of a run.
type Result struct {
	Stars    []catalog.Star // surviving rows in input order
	Clusters int
	Noise    int
	Dropped  Drops
}

// Pipeline runs the analysis.  It holds configuration only; a Pipeline
// may be run any number of times, and concurrently.
type Pipeline struct {
	params   dbscan.Params
	features []func(*catalog.Star) float64
	gal      func(unit.RA, unit.Angle) (unit.Angle, unit.Angle)
	workers  int
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics sets collectors updated by each run.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New returns a Pipeline for cfg.  Unknown feature or frame names are an
// error.  Clustering parameters are checked by Run.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		params:  dbscan.Params{Eps: cfg.Eps, MinSamples: cfg.MinSamples},
		workers: cfg.Workers,
		log:     zap.NewNop(),
	}
	if p.workers < 1 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	names := cfg.Features
	if len(names) == 0 {
		names = DefaultFeatures
	}
	for _, n := range names {
		f, ok := features[n]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", n)
		}
		p.features = append(p.features, f)
	}
	switch cfg.Frame {
	case FrameJ2000, "":
		p.gal = astro.EqToGal
	case FrameB1950:
		p.gal = astro.EqToGalB1950
	default:
		return nil, fmt.Errorf("unknown galactic frame %q", cfg.Frame)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run processes rows, which are not modified.
func (p *Pipeline) Run(rows []catalog.Row) (*Result, error) {
	if err := p.params.Validate(); err != nil {
		return nil, &StageError{StageCluster, err}
	}
	p.metrics.RowsRead(len(rows))

	start := time.Now()
	res := &Result{}
	keep := make([]catalog.Row, 0, len(rows))
	for _, r := range rows {
		switch {
		case math.IsNaN(r.RA) || math.IsNaN(r.Dec) || math.IsNaN(r.PMRA) ||
			math.IsNaN(r.PMDec) || math.IsNaN(r.Parallax):
			res.Dropped.Missing++
		case r.Parallax <= 0:
			res.Dropped.Parallax++
		default:
			keep = append(keep, r)
		}
	}
	plx := make([]float64, len(keep))
	for i := range keep {
		plx[i] = keep[i].Parallax
	}
	dist, err := astro.ParallaxDistances(plx)
	if err != nil {
		return nil, &StageError{StageDistance, err}
	}
	stars := make([]catalog.Star, 0, len(keep))
	for i, r := range keep {
		if !astro.IsFinite(r.RA, r.Dec, r.PMRA, r.PMDec, r.Parallax, dist[i]) {
			res.Dropped.NonFinite++
			continue
		}
		stars = append(stars, catalog.Star{Row: r, Distance: dist[i]})
	}
	p.metrics.Stage(StageDistance, start)
	p.metrics.RowsDropped("missing", res.Dropped.Missing)
	p.metrics.RowsDropped("parallax", res.Dropped.Parallax)
	p.metrics.RowsDropped("non_finite", res.Dropped.NonFinite)
	p.log.Debug("rows filtered",
		zap.Int("read", len(rows)),
		zap.Int("kept", len(stars)),
		zap.Int("missing", res.Dropped.Missing),
		zap.Int("parallax", res.Dropped.Parallax),
		zap.Int("non_finite", res.Dropped.NonFinite))

	res.Stars = stars
	if len(stars) == 0 {
		res.Stars = []catalog.Star{}
		p.metrics.Clustered(0, 0)
		p.log.Info("empty catalog, nothing to cluster",
			zap.Int("dropped", res.Dropped.Total()))
		return res, nil
	}

	start = time.Now()
	fm := mat.NewDense(len(stars), len(p.features), nil)
	for i := range stars {
		for j, f := range p.features {
			fm.Set(i, j, f(&stars[i]))
		}
	}
	scaled, err := scale.Standardize(fm)
	if err != nil {
		return nil, &StageError{StageNormalize, err}
	}
	p.metrics.Stage(StageNormalize, start)

	start = time.Now()
	cl, err := dbscan.Cluster(scaled, p.params, dbscan.WithWorkers(p.workers))
	if err != nil {
		return nil, &StageError{StageCluster, err}
	}
	for i, l := range cl.Labels {
		stars[i].Cluster = l
	}
	res.Clusters, res.Noise = cl.Clusters, cl.Noise
	p.metrics.Stage(StageCluster, start)
	p.log.Debug("clustered",
		zap.Int("core", count(cl.Core)),
		zap.Int("clusters", cl.Clusters),
		zap.Int("noise", cl.Noise))

	start = time.Now()
	if err := p.transform(stars); err != nil {
		return nil, &StageError{StageTransform, err}
	}
	p.metrics.Stage(StageTransform, start)

	p.metrics.Clustered(res.Clusters, res.Noise)
	p.log.Info("run complete",
		zap.Int("stars", len(stars)),
		zap.Int("dropped", res.Dropped.Total()),
		zap.Int("clusters", res.Clusters),
		zap.Int("noise", res.Noise))
	return res, nil
}

func count(b []bool) (n int) {
	for _, t := range b {
		if t {
			n++
		}
	}
	return
}

// Public domain.

package cmprog

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/soniakeys/exit"
	"github.com/soniakeys/sexagesimal"
	"go.uber.org/zap"

	"github.com/soniakeys/comove/astro"
	"github.com/soniakeys/comove/internal/catalog"
	"github.com/soniakeys/comove/internal/config"
	"github.com/soniakeys/comove/internal/logger"
	"github.com/soniakeys/comove/internal/metrics"
	"github.com/soniakeys/comove/internal/pipeline"
)

const versionString = "comove version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	if err := run(cl, os.Stdin, os.Stdout, os.Stderr); err != nil {
		exit.Log(err)
	}
}

type commandLine struct {
	dc     string  // config file
	eps    float64 // -eps, if set
	min    int     // -min, if set
	setEps bool
	setMin bool
	fnCat  string // catalog
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.Float64Var(&cl.eps, "eps", 0, "")
	flag.IntVar(&cl.min, "min", 0, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: comove [options] <catalog>    cluster stars in catalog file
       comove [options] -            cluster stars in CSV catalog from stdin
       comove -h                     display help and quick reference
       comove -v                     display version and copyright

Options:
       -c <config-file>
       -eps <neighborhood radius>
       -min <min samples>
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "eps":
			cl.setEps = true
		case "min":
			cl.setMin = true
		}
	})
	cl.fnCat = flag.Arg(0)
	return &cl
}

// readConfig loads the config file if one was given, then applies command
// line overrides.
func readConfig(cl *commandLine) (config.Config, error) {
	cfg := config.Default()
	if cl.dc > "" {
		var err error
		if cfg, err = config.Load(cl.dc); err != nil {
			return cfg, err
		}
	}
	if cl.setEps {
		cfg.Clustering.Eps = cl.eps
	}
	if cl.setMin {
		cfg.Clustering.MinSamples = cl.min
	}
	// overrides are validated again
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid option: %w", err)
	}
	return cfg, nil
}

// run reads the catalog, writes enriched stars as CSV to stdout and a
// cluster summary to stderr.
func run(cl *commandLine, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := readConfig(cl)
	if err != nil {
		return err
	}
	log, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	var rows []catalog.Row
	if cl.fnCat == "-" {
		rows, err = catalog.Read(stdin)
		if err != nil {
			return fmt.Errorf("input stream: %w", err)
		}
	} else if rows, err = catalog.ReadFile(cl.fnCat); err != nil {
		return err
	}
	log.Debug("catalog read", zap.String("catalog", cl.fnCat), zap.Int("rows", len(rows)))

	reg := prometheus.NewRegistry()
	p, err := pipeline.New(pipeline.Config{
		Eps:        cfg.Clustering.Eps,
		MinSamples: cfg.Clustering.MinSamples,
		Features:   cfg.Features,
		Frame:      cfg.GalacticFrame,
		Workers:    cfg.Workers,
	}, pipeline.WithLogger(log), pipeline.WithMetrics(metrics.New(reg)))
	if err != nil {
		return err
	}
	res, err := p.Run(rows)
	if err != nil {
		return err
	}

	// enriched catalog, delayed until now to avoid writing a header
	// only to terminate with an error.
	bw := bufio.NewWriter(stdout)
	if err := catalog.WriteCSV(bw, res.Stars); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	printSummary(stderr, res)

	if cfg.Metrics.Textfile > "" {
		return metrics.WriteTextfile(cfg.Metrics.Textfile, reg)
	}
	return nil
}

func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "%d stars, %d clusters, %d noise, %d dropped\n",
		len(res.Stars), res.Clusters, res.Noise, res.Dropped.Total())
	sums := pipeline.Summarize(res.Stars)
	if len(sums) == 0 {
		return
	}
	fmt.Fprintf(w, "Cluster Members       RA          Dec      pmRA    pmDec  Dist(%s)      l       b\n",
		astro.DistanceUnit)
	for _, s := range sums {
		fmt.Fprintf(w, "%7d %7d %.1d %+.0d %8.2f %8.2f %8.4f %7.2f %+7.2f\n",
			s.Cluster, s.Members,
			sexa.FmtRA(s.RA), sexa.FmtAngle(s.Dec),
			s.PMRA, s.PMDec, s.Distance,
			s.GalL.Deg(), s.GalB.Deg())
	}
}

func printHelp() {
	fmt.Println(`
Comove finds co-moving groups of stars in an astrometric catalog.  Stars
are clustered by DBSCAN on standardized position, proper motion, and
parallax distance.  Input is a CSV file with a header line naming at least
the columns ra, dec, pmra, pmdec, and parallax, or a Parquet file with the
same columns.  Output on stdout is the catalog in CSV with distance,
cluster, Cartesian, and galactic columns added.  A summary of clusters is
written to stderr.

Config file keys:
   clustering.eps
   clustering.min_samples
   features
   galactic_frame
   workers
   logging.env
   logging.level
   metrics.textfile

Features:
   ra dec pmra pmdec parallax distance

For full documentation:
   go doc github.com/soniakeys/comove`)
}

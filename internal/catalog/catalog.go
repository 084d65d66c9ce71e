// Public domain.

// Package catalog defines astrometric catalog rows, the enriched records
// produced from them, and their tabular forms.
//
// Missing values are represented as NaN.  Readers here do not drop rows;
// excluding rows with missing values is left to the caller.
package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Row is one catalog row as read.
type Row struct {
	ID       string  // source id, may be empty
	RA, Dec  float64 // degrees
	PMRA     float64 // proper motion in RA (mu_alpha* = mu_alpha cos dec), mas/yr
	PMDec    float64 // proper motion in Dec, mas/yr
	Parallax float64 // mas
}

// Star is a Row with the fields derived by clustering and coordinate
// transformation.
type Star struct {
	Row
	Distance   float64 // 1/Parallax
	Cluster    int     // cluster id, -1 for noise
	X, Y, Z    float64 // Cartesian, unit of Distance
	GalL, GalB float64 // galactic longitude and latitude, degrees
}

// Required column names.
const (
	ColRA       = "ra"
	ColDec      = "dec"
	ColPMRA     = "pmra"
	ColPMDec    = "pmdec"
	ColParallax = "parallax"
	ColID       = "source_id"
)

// Required lists the columns every catalog must have.
var Required = []string{ColRA, ColDec, ColPMRA, ColPMDec, ColParallax}

// MissingColumnError reports a catalog without a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog has no %q column", e.Column)
}

// ReadFile reads a catalog file.  Files with extension .parquet are read
// as Parquet, anything else as CSV.
func ReadFile(fn string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(fn), ".parquet") {
		return ReadParquet(fn)
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return rows, nil
}

// Read reads a CSV catalog from r.  It is ReadCSV, named for symmetry with
// ReadFile when the source is a stream such as stdin.
func Read(r io.Reader) ([]Row, error) {
	return ReadCSV(r)
}

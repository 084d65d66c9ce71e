// Public domain.

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadCSV reads a catalog with a header line naming its columns.
//
// Column names are matched case insensitively and may appear in any order.
// Columns other than the required ones and source_id are ignored.  Cells
// that are empty or do not parse as numbers read as NaN.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty catalog, no header")
	}
	if err != nil {
		return nil, err
	}
	colx := map[string]int{}
	for i, h := range header {
		colx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var x [5]int
	for i, c := range Required {
		var ok bool
		if x[i], ok = colx[c]; !ok {
			return nil, &MissingColumnError{c}
		}
	}
	idx, hasID := colx[ColID]

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := Row{
			RA:       parseCell(rec[x[0]]),
			Dec:      parseCell(rec[x[1]]),
			PMRA:     parseCell(rec[x[2]]),
			PMDec:    parseCell(rec[x[3]]),
			Parallax: parseCell(rec[x[4]]),
		}
		if hasID {
			row.ID = strings.TrimSpace(rec[idx])
		}
		rows = append(rows, row)
	}
}

// parseCell quietly reads anything unparseable, such as an empty cell or
// "null", as a missing value.
func parseCell(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Header is the column header written by WriteCSV.
var Header = []string{
	ColID, ColRA, ColDec, ColPMRA, ColPMDec, ColParallax,
	"distance", "cluster", "x", "y", "z", "galactic_l", "galactic_b",
}

// WriteCSV writes enriched records with Header as the first line.
// Floats are written in the shortest form that reads back exactly.
func WriteCSV(w io.Writer, stars []Star) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	rec := make([]string, len(Header))
	for i := range stars {
		s := &stars[i]
		rec[0] = s.ID
		rec[1] = ff(s.RA)
		rec[2] = ff(s.Dec)
		rec[3] = ff(s.PMRA)
		rec[4] = ff(s.PMDec)
		rec[5] = ff(s.Parallax)
		rec[6] = ff(s.Distance)
		rec[7] = strconv.Itoa(s.Cluster)
		rec[8] = ff(s.X)
		rec[9] = ff(s.Y)
		rec[10] = ff(s.Z)
		rec[11] = ff(s.GalL)
		rec[12] = ff(s.GalB)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Public domain.

package catalog

import (
	"fmt"
	"math"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// parquetRow maps Gaia archive column names.  Every column is optional so
// that nulls read as nil.
type parquetRow struct {
	SourceID *int64   `parquet:"source_id,optional"`
	RA       *float64 `parquet:"ra,optional"`
	Dec      *float64 `parquet:"dec,optional"`
	PMRA     *float64 `parquet:"pmra,optional"`
	PMDec    *float64 `parquet:"pmdec,optional"`
	Parallax *float64 `parquet:"parallax,optional"`
}

// ReadParquet reads a catalog from a Parquet file.
func ReadParquet(fn string) ([]Row, error) {
	prs, err := parquet.ReadFile[parquetRow](fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	rows := make([]Row, len(prs))
	for i, p := range prs {
		rows[i] = p.row()
	}
	return rows, nil
}

func (p *parquetRow) row() Row {
	r := Row{
		RA:       orNaN(p.RA),
		Dec:      orNaN(p.Dec),
		PMRA:     orNaN(p.PMRA),
		PMDec:    orNaN(p.PMDec),
		Parallax: orNaN(p.Parallax),
	}
	if p.SourceID != nil {
		r.ID = strconv.FormatInt(*p.SourceID, 10)
	}
	return r
}

func orNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// WriteParquet writes rows in the form ReadParquet reads.  Missing values
// are written as nulls.  IDs that are not integers are dropped.
func WriteParquet(fn string, rows []Row) error {
	prs := make([]parquetRow, len(rows))
	for i := range rows {
		prs[i] = toParquet(&rows[i])
	}
	return parquet.WriteFile(fn, prs)
}

func toParquet(r *Row) parquetRow {
	nilNaN := func(f float64) *float64 {
		if math.IsNaN(f) {
			return nil
		}
		return &f
	}
	p := parquetRow{
		RA:       nilNaN(r.RA),
		Dec:      nilNaN(r.Dec),
		PMRA:     nilNaN(r.PMRA),
		PMDec:    nilNaN(r.PMDec),
		Parallax: nilNaN(r.Parallax),
	}
	if id, err := strconv.ParseInt(r.ID, 10, 64); err == nil {
		p.SourceID = &id
	}
	return p
}

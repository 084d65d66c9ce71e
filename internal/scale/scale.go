// Public domain.

// Package scale standardizes feature matrices for clustering.
package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// InvalidInputError reports a matrix that cannot be standardized.
//
// Row is -1 when the problem is with a column as a whole.
type InvalidInputError struct {
	Row, Col int
	Reason   string
}

func (e *InvalidInputError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %d: %s", e.Col, e.Reason)
	}
	return fmt.Sprintf("row %d column %d: %s", e.Row, e.Col, e.Reason)
}

// Standardize returns a new matrix where each column of m is shifted to
// sample mean 0 and scaled to sample (n-1) standard deviation 1.
// scikit-learn's StandardScaler divides by the population (n) deviation
// instead, so scaled values here are smaller by a factor sqrt((n-1)/n).
//
// Statistics are computed per column over all rows of m and are not kept.
// Non-finite values, and columns with zero or undefined variance, return
// an *InvalidInputError.  m is not modified.
func Standardize(m mat.Matrix) (*mat.Dense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, &InvalidInputError{-1, 0, "empty matrix"}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &InvalidInputError{i, j, "non-finite value"}
			}
		}
	}
	out := mat.DenseCopyOf(m)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		// std is NaN for a single row
		if !(std > 0) || math.IsInf(std, 0) {
			return nil, &InvalidInputError{-1, j, "zero variance"}
		}
		for i, v := range col {
			out.Set(i, j, (v-mean)/std)
		}
	}
	return out, nil
}

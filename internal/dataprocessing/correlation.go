package dataprocessing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrMatrix is a square, symmetric Pearson correlation matrix indexed by
// numeric column name. Values[i][j] pairs Columns[i] with Columns[j].
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// CorrelationMatrix correlates every pair of numeric columns. Each pair uses
// only rows where both values are present. A pair with fewer than two such
// rows or with zero variance on either side is NaN.
func CorrelationMatrix(t *Table) CorrMatrix {
	columns := NumericColumns(t)
	data := make([][]float64, len(columns))
	for i, name := range columns {
		data[i], _ = t.Floats(name)
	}

	values := make([][]float64, len(columns))
	for i := range values {
		values[i] = make([]float64, len(columns))
	}

	for i := range columns {
		values[i][i] = 1.0
		for j := i + 1; j < len(columns); j++ {
			r := pearson(data[i], data[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return CorrMatrix{Columns: columns, Values: values}
}

// pearson correlates the rows where both x and y are present
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return r
	}
	return math.Max(-1, math.Min(1, r))
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// At returns the coefficient for a pair of columns
func (m CorrMatrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

// StrongestPair returns the off-diagonal pair with the largest absolute
// coefficient. NaN entries are ignored; ok is false when none remain.
func (m CorrMatrix) StrongestPair() (a, b string, r float64, ok bool) {
	best := -1.0
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			if math.Abs(v) > best {
				best = math.Abs(v)
				a, b, r, ok = m.Columns[i], m.Columns[j], v, true
			}
		}
	}
	return a, b, r, ok
}

func (m CorrMatrix) index(column string) int {
	for i, c := range m.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

package dataprocessing

import (
	"math"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ColumnStatistics is the describe() view of one numeric column.
// Every field except Count is NaN when the column has no values.
type ColumnStatistics struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
	Skew   float64 `json:"skew"`
}

// ColumnInfo is one line of the info() view
type ColumnInfo struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	NonNull int        `json:"non_null"`
}

// NumericColumns returns the int and float columns in table order
func NumericColumns(t *Table) []string {
	var out []string
	for _, name := range t.Names() {
		if kind, err := t.Kind(name); err == nil && kind.IsNumeric() {
			out = append(out, name)
		}
	}
	return out
}

// SummaryStatistics describes every numeric column. Missing values are skipped.
func SummaryStatistics(t *Table) map[string]ColumnStatistics {
	out := make(map[string]ColumnStatistics)
	for _, name := range NumericColumns(t) {
		values, err := t.Floats(name)
		if err != nil {
			continue
		}
		out[name] = describe(name, values)
	}
	return out
}

// describe computes statistics over the non-missing values
func describe(column string, values []float64) ColumnStatistics {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	nan := math.NaN()
	s := ColumnStatistics{
		Column: column,
		Count:  len(present),
		Mean:   nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan, Skew: nan,
	}
	if s.Count == 0 {
		return s
	}

	sorted := make([]float64, len(present))
	copy(sorted, present)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(present, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = percentile(sorted, 0.25)
	s.P50 = percentile(sorted, 0.50)
	s.P75 = percentile(sorted, 0.75)

	if s.Count > 1 {
		s.Std = stat.StdDev(present, nil)
	}
	if s.Count > 2 && s.Std > 0 {
		s.Skew = stat.Skew(present, nil)
	}
	return s
}

// percentile returns the p-quantile (0..1) of sorted values using linear
// interpolation between the closest ranks
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Info returns the info() view of every column
func Info(t *Table) []ColumnInfo {
	out := make([]ColumnInfo, 0, t.Ncol())
	for _, name := range t.Names() {
		kind, _ := t.Kind(name)
		_, missing, err := t.Strings(name)
		if err != nil {
			continue
		}
		nonNull := 0
		for _, m := range missing {
			if !m {
				nonNull++
			}
		}
		out = append(out, ColumnInfo{Name: name, Kind: kind, NonNull: nonNull})
	}
	return out
}

// Head returns the header and the first n rows as display strings.
// Missing cells are rendered as "NaN".
func Head(t *Table, n int) [][]string {
	if n > t.Nrow() {
		n = t.Nrow()
	}
	if n < 0 {
		n = 0
	}

	names := t.Names()
	out := make([][]string, n+1)
	out[0] = append([]string(nil), names...)
	for i := 1; i <= n; i++ {
		out[i] = make([]string, len(names))
	}

	for j, name := range names {
		values, missing, err := t.Strings(name)
		if err != nil {
			continue
		}
		for i := 0; i < n; i++ {
			if missing[i] {
				out[i+1][j] = "NaN"
				continue
			}
			out[i+1][j] = values[i]
		}
	}
	return out
}

// CategoryOrder returns the distinct non-missing values of a column in natural
// order: ascending for numeric and datetime columns, first appearance otherwise.
func CategoryOrder(t *Table, column string) ([]string, error) {
	kind, err := t.Kind(column)
	if err != nil {
		return nil, err
	}
	values, missing, err := t.Strings(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var distinct []string
	for i, v := range values {
		if missing[i] || seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}

	switch {
	case kind.IsNumeric():
		sort.SliceStable(distinct, func(i, j int) bool {
			a, _ := strconv.ParseFloat(distinct[i], 64)
			b, _ := strconv.ParseFloat(distinct[j], 64)
			return a < b
		})
	case kind == KindDatetime:
		layout := t.datetimes[column].layout
		sort.SliceStable(distinct, func(i, j int) bool {
			a, _ := time.Parse(layout, distinct[i])
			b, _ := time.Parse(layout, distinct[j])
			return a.Before(b)
		})
	}
	return distinct, nil
}

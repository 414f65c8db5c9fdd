package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"saleseda/internal/errors"
)

// ColumnKind is the logical type of a table column
type ColumnKind string

const (
	KindString   ColumnKind = "string"
	KindInt      ColumnKind = "int"
	KindFloat    ColumnKind = "float"
	KindBool     ColumnKind = "bool"
	KindDatetime ColumnKind = "datetime"
)

// IsNumeric reports whether the kind takes part in numeric statistics
func (k ColumnKind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// datetimeColumn holds parsed values of a datetime-typed column.
// The frame keeps the original text so row alignment is shared.
type datetimeColumn struct {
	layout string
	values []time.Time
	valid  []bool
}

// Table is an in-memory collection of named, typed columns with aligned rows.
// Tables are never modified in place; transformations return a new Table.
type Table struct {
	frame     dataframe.DataFrame
	datetimes map[string]datetimeColumn
}

// newTable wraps a frame, carrying over datetime columns still present in it
func newTable(frame dataframe.DataFrame, datetimes map[string]datetimeColumn) *Table {
	t := &Table{
		frame:     frame,
		datetimes: make(map[string]datetimeColumn, len(datetimes)),
	}
	names := make(map[string]bool, frame.Ncol())
	for _, name := range frame.Names() {
		names[name] = true
	}
	for name, col := range datetimes {
		if names[name] {
			t.datetimes[name] = col
		}
	}
	return t
}

// NewTableFromRecords builds a table from string records whose first row is the header
func NewTableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.NewReadError("table has no header row", nil)
	}
	if len(records) == 1 {
		return nil, errors.NewReadError("table has no data rows", nil)
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingValueMarkers),
	)
	if frame.Err != nil {
		return nil, errors.NewReadError("failed to build table", frame.Err)
	}
	return newTable(frame, nil), nil
}

// checkHeader rejects repeated column names. Blank names are left to the
// frame, which numbers them.
func checkHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			return errors.NewReadError(
				fmt.Sprintf("duplicate column %q in header positions %d and %d", name, first+1, i+1), nil).
				WithContext("column", name)
		}
		seen[name] = i
	}
	return nil
}

// MissingValueMarkers are cell values treated as missing
var MissingValueMarkers = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// Names returns the column names in order
func (t *Table) Names() []string {
	return t.frame.Names()
}

// Ncol returns the number of columns
func (t *Table) Ncol() int {
	return t.frame.Ncol()
}

// Nrow returns the number of rows
func (t *Table) Nrow() int {
	return t.frame.Nrow()
}

// Frame returns a copy of the underlying data frame
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame.Copy()
}

// HasColumn reports whether the column exists
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Kind returns the logical type of a column
func (t *Table) Kind(name string) (ColumnKind, error) {
	if !t.HasColumn(name) {
		return "", errors.NewColumnError(name, "not found")
	}
	if _, ok := t.datetimes[name]; ok {
		return KindDatetime, nil
	}
	switch t.frame.Col(name).Type() {
	case series.Int:
		return KindInt, nil
	case series.Float:
		return KindFloat, nil
	case series.Bool:
		return KindBool, nil
	default:
		return KindString, nil
	}
}

// Floats returns a numeric column as float64 values, NaN marking missing values
func (t *Table) Floats(name string) ([]float64, error) {
	kind, err := t.Kind(name)
	if err != nil {
		return nil, err
	}
	if !kind.IsNumeric() {
		return nil, errors.NewColumnError(name, "not numeric")
	}

	col := t.frame.Col(name)
	out := make([]float64, col.Len())
	for i := range out {
		elem := col.Elem(i)
		if elem.IsNA() {
			out[i] = math.NaN()
			continue
		}
		out[i] = elem.Float()
	}
	return out, nil
}

// Times returns a datetime column and its validity mask
func (t *Table) Times(name string) ([]time.Time, []bool, error) {
	if !t.HasColumn(name) {
		return nil, nil, errors.NewColumnError(name, "not found")
	}
	col, ok := t.datetimes[name]
	if !ok {
		return nil, nil, errors.NewColumnError(name, "not a datetime column")
	}
	values := make([]time.Time, len(col.values))
	copy(values, col.values)
	valid := make([]bool, len(col.valid))
	copy(valid, col.valid)
	return values, valid, nil
}

// Strings returns the display value of every cell in a column with a missing mask.
// Floats use the shortest exact representation; datetimes use their parse layout.
func (t *Table) Strings(name string) ([]string, []bool, error) {
	kind, err := t.Kind(name)
	if err != nil {
		return nil, nil, err
	}

	if kind == KindDatetime {
		col := t.datetimes[name]
		out := make([]string, len(col.values))
		missing := make([]bool, len(col.values))
		for i, v := range col.values {
			if !col.valid[i] {
				missing[i] = true
				continue
			}
			out[i] = v.Format(col.layout)
		}
		return out, missing, nil
	}

	col := t.frame.Col(name)
	out := make([]string, col.Len())
	missing := make([]bool, col.Len())
	for i := range out {
		elem := col.Elem(i)
		if elem.IsNA() {
			missing[i] = true
			continue
		}
		switch kind {
		case KindFloat:
			out[i] = strconv.FormatFloat(elem.Float(), 'f', -1, 64)
		case KindInt:
			v, err := elem.Int()
			if err != nil {
				missing[i] = true
				continue
			}
			out[i] = strconv.Itoa(v)
		default:
			out[i] = elem.String()
		}
	}
	return out, missing, nil
}

// copyDatetimes returns a shallow copy of the datetime column map
func (t *Table) copyDatetimes() map[string]datetimeColumn {
	out := make(map[string]datetimeColumn, len(t.datetimes))
	for k, v := range t.datetimes {
		out[k] = v
	}
	return out
}

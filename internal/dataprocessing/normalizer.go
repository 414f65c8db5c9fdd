package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/series"

	"saleseda/internal/errors"
)

// DropLeadingColumn removes the first column, typically a row index written by
// the tool that exported the sample.
func DropLeadingColumn(t *Table) (*Table, error) {
	if t.Ncol() == 0 {
		return nil, errors.NewColumnError("", "table has no columns to drop")
	}

	frame := t.frame.Drop(0)
	if frame.Err != nil {
		return nil, errors.NewColumnError(t.Names()[0], frame.Err.Error())
	}
	return newTable(frame, t.copyDatetimes()), nil
}

// ParseDatetime converts a text column to datetime using layout. Missing cells
// stay missing; any other value that does not render back to itself under the
// layout is a ParseError naming the first offending row (1-based, header excluded).
func ParseDatetime(t *Table, column, layout string) (*Table, error) {
	kind, err := t.Kind(column)
	if err != nil {
		return nil, err
	}
	if kind == KindDatetime {
		return nil, errors.NewColumnError(column, "already a datetime column")
	}

	raw, missing, err := t.Strings(column)
	if err != nil {
		return nil, err
	}

	parsed := datetimeColumn{
		layout: layout,
		values: make([]time.Time, len(raw)),
		valid:  make([]bool, len(raw)),
	}
	for i, value := range raw {
		if missing[i] {
			continue
		}
		ts, err := time.ParseInLocation(layout, value, time.UTC)
		if err != nil {
			return nil, errors.NewParseError(column, i+1, value, err)
		}
		// time.Parse accepts trailing fractional seconds the layout does not name
		if ts.Format(layout) != value {
			return nil, errors.NewParseError(column, i+1, value,
				fmt.Errorf("value does not match layout %q exactly", layout))
		}
		parsed.values[i] = ts
		parsed.valid[i] = true
	}

	datetimes := t.copyDatetimes()
	datetimes[column] = parsed
	return newTable(t.frame.Copy(), datetimes), nil
}

// DeriveHour appends an integer "hour" column holding the hour of day (0-23)
// of a datetime column. Rows with a missing timestamp get a missing hour.
func DeriveHour(t *Table, column string) (*Table, error) {
	return DeriveHourAs(t, column, "hour")
}

// DeriveHourAs is DeriveHour with an explicit target column name
func DeriveHourAs(t *Table, column, target string) (*Table, error) {
	values, valid, err := t.Times(column)
	if err != nil {
		return nil, err
	}

	hours := make([]string, len(values))
	for i, ts := range values {
		if !valid[i] {
			hours[i] = "NaN"
			continue
		}
		hours[i] = strconv.Itoa(ts.Hour())
	}

	frame := t.frame.Mutate(series.New(hours, series.Int, target))
	if frame.Err != nil {
		return nil, errors.NewColumnError(target, fmt.Sprintf("failed to add column: %v", frame.Err))
	}

	datetimes := t.copyDatetimes()
	delete(datetimes, target)
	return newTable(frame, datetimes), nil
}

// RequireColumns checks every named column is present. The error lists all
// absent columns.
func RequireColumns(t *Table, columns ...string) error {
	var missing []string
	for _, column := range columns {
		if !t.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.NewColumnError(strings.Join(missing, ", "), "required column missing").
		WithContext("missing", missing)
}

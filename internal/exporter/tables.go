package exporter

import (
	"saleseda/internal/dataprocessing"
)

// StatisticsHeaders are the columns of statistics.csv
var StatisticsHeaders = []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "skew"}

// StatisticsRecords lays out one row per numeric column in table order
func StatisticsRecords(results *dataprocessing.Results) [][]string {
	records := make([][]string, 0, len(results.NumericColumns))
	for _, column := range results.NumericColumns {
		s, ok := results.Statistics[column]
		if !ok {
			continue
		}
		records = append(records, []string{
			column,
			formatInt(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.P25),
			formatFloat(s.P50),
			formatFloat(s.P75),
			formatFloat(s.Max),
			formatFloat(s.Skew),
		})
	}
	return records
}

// CorrelationTable returns the header and rows of the correlation matrix.
// The first header cell is blank above the row labels.
func CorrelationTable(m dataprocessing.CorrMatrix) ([]string, [][]string) {
	headers := append([]string{""}, m.Columns...)
	records := make([][]string, len(m.Columns))
	for i, column := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, column)
		for _, r := range m.Values[i] {
			row = append(row, formatFloat(r))
		}
		records[i] = row
	}
	return headers, records
}

// FrequencyHeaders are the columns of each frequencies_<column>.csv
var FrequencyHeaders = []string{"value", "count", "percent"}

// FrequencyRecords lists every distinct value, most frequent first. Percent is
// relative to the non-missing values.
func FrequencyRecords(report dataprocessing.ValueReport) [][]string {
	total := report.Total()
	records := make([][]string, 0, len(report.Frequencies))
	for _, vc := range report.Frequencies {
		records = append(records, []string{vc.Value, formatInt(vc.Count), formatPercent(vc.Count, total)})
	}
	return records
}

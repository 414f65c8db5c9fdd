package dataprocessing

import "sort"

// ValueCount is one entry of a frequency table
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueReport lists the distinct values of a column with their frequencies,
// most frequent first. Ties keep the order of first appearance.
type ValueReport struct {
	Column      string       `json:"column"`
	Kind        ColumnKind   `json:"kind"`
	UniqueCount int          `json:"unique_count"`
	Missing     int          `json:"missing"`
	Rows        int          `json:"rows"`
	Frequencies []ValueCount `json:"frequencies"`
}

// UniqueValueReport counts the distinct values of a column. Missing values are
// counted separately and never appear in the frequencies.
func UniqueValueReport(t *Table, column string) (ValueReport, error) {
	kind, err := t.Kind(column)
	if err != nil {
		return ValueReport{}, err
	}
	values, missing, err := t.Strings(column)
	if err != nil {
		return ValueReport{}, err
	}

	report := ValueReport{Column: column, Kind: kind, Rows: len(values)}
	index := make(map[string]int)
	for i, v := range values {
		if missing[i] {
			report.Missing++
			continue
		}
		if pos, ok := index[v]; ok {
			report.Frequencies[pos].Count++
			continue
		}
		index[v] = len(report.Frequencies)
		report.Frequencies = append(report.Frequencies, ValueCount{Value: v, Count: 1})
	}

	sort.SliceStable(report.Frequencies, func(i, j int) bool {
		return report.Frequencies[i].Count > report.Frequencies[j].Count
	})
	report.UniqueCount = len(report.Frequencies)
	return report, nil
}

// Top returns the n most frequent values
func (r ValueReport) Top(n int) []ValueCount {
	if n > len(r.Frequencies) {
		n = len(r.Frequencies)
	}
	if n < 0 {
		n = 0
	}
	return r.Frequencies[:n]
}

// Bottom returns the n least frequent values, least frequent last
func (r ValueReport) Bottom(n int) []ValueCount {
	if n > len(r.Frequencies) {
		n = len(r.Frequencies)
	}
	if n < 0 {
		n = 0
	}
	return r.Frequencies[len(r.Frequencies)-n:]
}

// Count returns the frequency of value
func (r ValueReport) Count(value string) (int, bool) {
	for _, vc := range r.Frequencies {
		if vc.Value == value {
			return vc.Count, true
		}
	}
	return 0, false
}

// Total is the number of non-missing values
func (r ValueReport) Total() int {
	total := 0
	for _, vc := range r.Frequencies {
		total += vc.Count
	}
	return total
}

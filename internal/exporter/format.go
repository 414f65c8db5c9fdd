package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a float64 value for table output with 4 decimal places.
// Missing values are written as NaN.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// formatInt formats an int value for table output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatPercent formats part/whole as a percentage with one decimal
func formatPercent(part, whole int) string {
	if whole == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(part)/float64(whole)*100, 'f', 1, 64)
}

// cellFloat converts a float for a spreadsheet cell; NaN is not a valid
// numeric cell, so it becomes the text "NaN"
func cellFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NaN"
	}
	return f
}

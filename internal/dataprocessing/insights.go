package dataprocessing

import (
	"fmt"
	"math"
	"strings"

	"saleseda/pkg/contracts/domain"
)

// skewThreshold separates skewed from roughly symmetric distributions
const skewThreshold = 0.5

// Insights is the narrative drawn from the computed results
type Insights struct {
	Observations []string `json:"observations"`
	Conclusions  []string `json:"conclusions"`
}

// Conclusions that hold for any sample of this shape: it cannot answer a
// stocking question on its own.
var standardConclusions = []string{
	"More rows are needed: the sample covers a single store over a short period.",
	"The problem statement needs narrowing: \"how to better stock items\" is too broad to answer from transactions alone.",
	"More features are needed: once the question is framed, add columns that explain the outcome being predicted.",
}

// BuildInsights derives observations from the statistics, unique-value reports
// and correlation matrix, followed by the standing conclusions
func BuildInsights(results *Results) Insights {
	var out Insights

	if !results.FirstSeen.IsZero() {
		days := int(results.LastSeen.Sub(results.FirstSeen).Hours()/24) + 1
		out.Observations = append(out.Observations, fmt.Sprintf(
			"The sample holds %d transactions from %s to %s (%d day(s)).",
			results.Rows,
			results.FirstSeen.Format("2006-01-02"),
			results.LastSeen.Format("2006-01-02"),
			days))
	}

	for _, column := range results.NumericColumns {
		stats, ok := results.Statistics[column]
		if !ok || column == domain.ColumnHour || math.IsNaN(stats.Skew) {
			continue
		}
		out.Observations = append(out.Observations, describeSkew(stats))
	}

	for _, column := range domain.IdentifierColumns {
		report, ok := results.Reports[column]
		if !ok {
			continue
		}
		if report.UniqueCount == report.Rows-report.Missing {
			out.Observations = append(out.Observations, fmt.Sprintf(
				"%s is unique on every row (%d values) and is not worth plotting.",
				column, report.UniqueCount))
			continue
		}
		out.Observations = append(out.Observations, describeSpread(report))
	}

	for _, column := range domain.CategoricalColumns {
		report, ok := results.Reports[column]
		if !ok || report.UniqueCount == 0 {
			continue
		}
		if column == domain.ColumnHour {
			out.Observations = append(out.Observations, describeBusyHours(report))
			continue
		}
		out.Observations = append(out.Observations, describeSpread(report))
	}

	if a, b, r, ok := results.Correlation.StrongestPair(); ok {
		out.Observations = append(out.Observations, fmt.Sprintf(
			"The strongest linear relationship is between %s and %s (r = %.3f); %s.",
			a, b, r, strengthText(r)))
	}

	out.Conclusions = append(out.Conclusions, standardConclusions...)
	return out
}

func describeSkew(stats ColumnStatistics) string {
	switch {
	case stats.Skew > skewThreshold:
		return fmt.Sprintf(
			"%s is positively skewed (skew %.2f): low values are far more common than high ones.",
			stats.Column, stats.Skew)
	case stats.Skew < -skewThreshold:
		return fmt.Sprintf(
			"%s is negatively skewed (skew %.2f): high values are more common than low ones.",
			stats.Column, stats.Skew)
	default:
		return fmt.Sprintf(
			"%s is roughly symmetric (skew %.2f) between %g and %g.",
			stats.Column, stats.Skew, stats.Min, stats.Max)
	}
}

func describeSpread(report ValueReport) string {
	top := report.Top(1)[0]
	bottom := report.Bottom(1)[0]
	return fmt.Sprintf(
		"%s has %d unique values; most frequent %q (%d), least frequent %q (%d).",
		report.Column, report.UniqueCount, top.Value, top.Count, bottom.Value, bottom.Count)
}

func describeBusyHours(report ValueReport) string {
	busiest := report.Top(3)
	hours := make([]string, len(busiest))
	for i, vc := range busiest {
		hours[i] = fmt.Sprintf("%s:00 (%d)", vc.Value, vc.Count)
	}
	return fmt.Sprintf("The busiest hours of the day are %s.", strings.Join(hours, ", "))
}

func strengthText(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return "a strong correlation"
	case abs >= 0.3:
		return "a moderate correlation"
	default:
		return "no numeric pair is meaningfully correlated"
	}
}

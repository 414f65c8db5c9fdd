package exporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"saleseda/internal/dataprocessing"
	"saleseda/internal/validation"
)

// maxListedFindings bounds the findings spelled out in the text report
const maxListedFindings = 20

// Report is everything a run hands to the exporter
type Report struct {
	Source      string
	GeneratedAt time.Time
	Results     *dataprocessing.Results
	Quality     *validation.QualityReport
	Insights    *dataprocessing.Insights
	Figures     []string
}

// RenderSummaryReport formats the plain-text summary report
func RenderSummaryReport(report Report, topN int) []byte {
	var buf bytes.Buffer
	r := report.Results

	fmt.Fprintf(&buf, "Sales Sample EDA - Summary Report\n")
	fmt.Fprintf(&buf, "=================================\n\n")
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Source: %s\n\n", report.Source)

	section(&buf, "DATASET OVERVIEW")
	fmt.Fprintf(&buf, "Rows: %d\n", r.Rows)
	fmt.Fprintf(&buf, "Columns: %d\n", r.Columns)
	if !r.FirstSeen.IsZero() {
		fmt.Fprintf(&buf, "Date Range: %s to %s\n",
			r.FirstSeen.Format("2006-01-02 15:04:05"), r.LastSeen.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&buf, "\n")

	section(&buf, "COLUMN INFO")
	tw := newTabWriter(&buf)
	fmt.Fprintf(tw, "#\tColumn\tNon-Null Count\tKind\n")
	for i, info := range r.Info {
		fmt.Fprintf(tw, "%d\t%s\t%d non-null\t%s\n", i, info.Name, info.NonNull, info.Kind)
	}
	tw.Flush()
	fmt.Fprintf(&buf, "\n")

	if len(r.Head) > 1 {
		section(&buf, "FIRST ROWS")
		tw = newTabWriter(&buf)
		for _, row := range r.Head {
			fmt.Fprintf(tw, "%s\n", strings.Join(row, "\t"))
		}
		tw.Flush()
		fmt.Fprintf(&buf, "\n")
	}

	section(&buf, "NUMERIC STATISTICS")
	tw = newTabWriter(&buf)
	fmt.Fprintf(tw, "%s\n", strings.Join(StatisticsHeaders, "\t"))
	for _, row := range StatisticsRecords(r) {
		fmt.Fprintf(tw, "%s\n", strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(&buf, "\n")

	for _, column := range r.ReportColumns {
		writeValueReport(&buf, r.Reports[column], topN)
	}

	section(&buf, "CORRELATION MATRIX")
	if len(r.Correlation.Columns) == 0 {
		fmt.Fprintf(&buf, "Not computed.\n\n")
	} else {
		headers, rows := CorrelationTable(r.Correlation)
		tw = newTabWriter(&buf)
		fmt.Fprintf(tw, "%s\n", strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\n", strings.Join(row, "\t"))
		}
		tw.Flush()
		fmt.Fprintf(&buf, "\n")
	}

	if report.Quality != nil {
		writeQuality(&buf, *report.Quality)
	}

	if report.Insights != nil {
		section(&buf, "OBSERVATIONS")
		for _, o := range report.Insights.Observations {
			fmt.Fprintf(&buf, "- %s\n", o)
		}
		fmt.Fprintf(&buf, "\n")

		section(&buf, "CONCLUSIONS")
		for i, c := range report.Insights.Conclusions {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, c)
		}
		fmt.Fprintf(&buf, "\n")
	}

	if len(report.Figures) > 0 {
		section(&buf, "FIGURES")
		for _, f := range report.Figures {
			fmt.Fprintf(&buf, "%s\n", f)
		}
	}

	return buf.Bytes()
}

func writeValueReport(w io.Writer, report dataprocessing.ValueReport, topN int) {
	section(w, "UNIQUE VALUES: "+report.Column)
	if report.Missing > 0 {
		fmt.Fprintf(w, "Unique: %d (excluding missing)\n", report.UniqueCount)
	} else {
		fmt.Fprintf(w, "Unique: %d\n", report.UniqueCount)
	}
	fmt.Fprintf(w, "Missing: %d\n", report.Missing)

	total := report.Total()
	if report.UniqueCount <= 2*topN {
		for i, vc := range report.Frequencies {
			fmt.Fprintf(w, "%3d. %s: %d (%s%%)\n", i+1, vc.Value, vc.Count, formatPercent(vc.Count, total))
		}
		fmt.Fprintf(w, "\n")
		return
	}

	fmt.Fprintf(w, "Top %d:\n", topN)
	for i, vc := range report.Top(topN) {
		fmt.Fprintf(w, "%3d. %s: %d (%s%%)\n", i+1, vc.Value, vc.Count, formatPercent(vc.Count, total))
	}
	fmt.Fprintf(w, "Bottom %d:\n", topN)
	offset := report.UniqueCount - topN
	for i, vc := range report.Bottom(topN) {
		fmt.Fprintf(w, "%3d. %s: %d (%s%%)\n", offset+i+1, vc.Value, vc.Count, formatPercent(vc.Count, total))
	}
	fmt.Fprintf(w, "\n")
}

func writeQuality(w io.Writer, quality validation.QualityReport) {
	section(w, "DATA QUALITY")
	fmt.Fprintf(w, "Records Checked: %d\n", quality.Checked)
	if quality.Clean() {
		fmt.Fprintf(w, "No findings.\n\n")
		return
	}

	counts := quality.Counts()
	for _, kind := range quality.Kinds() {
		fmt.Fprintf(w, "%s: %d\n", kind, counts[kind])
	}
	for i, f := range quality.Findings {
		if i == maxListedFindings {
			fmt.Fprintf(w, "... %d more\n", len(quality.Findings)-maxListedFindings)
			break
		}
		fmt.Fprintf(w, "row %d (%s): %s\n", f.Row, f.TransactionID, f.Message)
	}
	fmt.Fprintf(w, "\n")
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

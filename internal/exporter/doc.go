// Package exporter writes the reports of an analysis run.
//
// It has three outputs, all rooted at config.Paths:
//
// Summary report: a plain-text summary_report.txt with the dataset overview,
// column info, numeric statistics, unique-value reports, the correlation
// matrix, data quality findings and the derived observations.
//
// Tables: BOM-prefixed CSV files (statistics.csv, correlation.csv and
// frequencies_<column>.csv) written through CSVWriter.
//
// Workbook: eda_report.xlsx built with excelize, with a native column chart
// for every categorical column.
//
// Example usage:
//
//	exp := exporter.NewExporter(paths, logger, 10)
//	report := exporter.Report{Source: input, GeneratedAt: time.Now(), Results: results}
//	if _, err := exp.WriteSummaryReport(ctx, report); err != nil {
//		return err
//	}
package exporter

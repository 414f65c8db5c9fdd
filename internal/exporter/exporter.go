package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"saleseda/internal/config"
	"saleseda/internal/errors"
)

// Exporter writes the run's reports under the configured output paths
type Exporter struct {
	paths  *config.Paths
	csv    *CSVWriter
	logger *slog.Logger
	topN   int
}

// NewExporter creates an exporter. topN bounds the top/bottom value lists of
// the text report.
func NewExporter(paths *config.Paths, logger *slog.Logger, topN int) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if topN <= 0 {
		topN = config.DefaultTopN
	}
	return &Exporter{
		paths:  paths,
		csv:    NewCSVWriter(paths, logger),
		logger: logger,
		topN:   topN,
	}
}

// WriteSummaryReport writes summary_report.txt
func (e *Exporter) WriteSummaryReport(ctx context.Context, report Report) (string, error) {
	path := e.paths.SummaryReport
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := os.WriteFile(path, RenderSummaryReport(report, e.topN), 0644); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to write summary report %s", path), err)
	}

	e.logger.InfoContext(ctx, "Summary report written", slog.String("file", path))
	return path, nil
}

// WriteTables writes statistics.csv, correlation.csv and one frequency table
// per reported column. It returns the files written.
func (e *Exporter) WriteTables(ctx context.Context, report Report) ([]string, error) {
	r := report.Results
	var written []string

	if err := e.csv.WriteSimpleCSV(e.paths.StatisticsCSV, StatisticsHeaders, StatisticsRecords(r)); err != nil {
		return written, err
	}
	written = append(written, e.paths.StatisticsCSV)

	if len(r.Correlation.Columns) > 0 {
		headers, records := CorrelationTable(r.Correlation)
		if err := e.csv.WriteSimpleCSV(e.paths.CorrelationCSV, headers, records); err != nil {
			return written, err
		}
		written = append(written, e.paths.CorrelationCSV)
	}

	for _, column := range r.ReportColumns {
		path := e.paths.FrequencyCSVPath(column)
		if err := e.csv.WriteSimpleCSV(path, FrequencyHeaders, FrequencyRecords(r.Reports[column])); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	e.logger.InfoContext(ctx, "Tables written",
		slog.String("directory", e.paths.TablesDir),
		slog.Int("files", len(written)))
	return written, nil
}

// WriteWorkbook writes eda_report.xlsx with a chart sheet per categorical column
func (e *Exporter) WriteWorkbook(ctx context.Context, report Report, categorical []string) (string, error) {
	path := e.paths.Workbook

	f, err := BuildWorkbook(report, categorical)
	if err != nil {
		return "", errors.NewStorageError("failed to build workbook", err)
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}

	e.logger.InfoContext(ctx, "Workbook written",
		slog.String("file", path),
		slog.Int("sheets", f.SheetCount))
	return path, nil
}

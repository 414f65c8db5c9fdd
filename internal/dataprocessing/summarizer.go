package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"saleseda/pkg/contracts/domain"
)

// Summarizer gathers the descriptive views of a normalized sales table
type Summarizer struct {
	logger          *slog.Logger
	headRows        int
	reportColumns   []string
	timestampColumn string
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	HeadRows        int      // Rows kept for the head() preview
	ReportColumns   []string // Columns that get a unique-value report
	TimestampColumn string   // Datetime column that bounds the date range
}

// Results holds everything computed about one table. Correlation is filled by
// the correlation step and may be empty.
type Results struct {
	Rows           int                         `json:"rows"`
	Columns        int                         `json:"columns"`
	Info           []ColumnInfo                `json:"info"`
	Head           [][]string                  `json:"head"`
	NumericColumns []string                    `json:"numeric_columns"`
	Statistics     map[string]ColumnStatistics `json:"statistics"`
	ReportColumns  []string                    `json:"report_columns"`
	Reports        map[string]ValueReport      `json:"reports"`
	Correlation    CorrMatrix                  `json:"correlation"`
	FirstSeen      time.Time                   `json:"first_seen"`
	LastSeen       time.Time                   `json:"last_seen"`
}

// NewSummarizer creates a summarizer with the given configuration
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.HeadRows <= 0 {
		config.HeadRows = 5
	}
	if len(config.ReportColumns) == 0 {
		config.ReportColumns = DefaultReportColumns()
	}
	if config.TimestampColumn == "" {
		config.TimestampColumn = domain.ColumnTimestamp
	}

	return &Summarizer{
		logger:          logger,
		headRows:        config.HeadRows,
		reportColumns:   config.ReportColumns,
		timestampColumn: config.TimestampColumn,
	}
}

// DefaultReportColumns are the id and categorical columns plus the timestamp
func DefaultReportColumns() []string {
	columns := append([]string{}, domain.IdentifierColumns...)
	columns = append(columns, domain.CategoricalColumns...)
	return append(columns, domain.ColumnTimestamp)
}

// Summarize computes the info view, head preview, numeric statistics and a
// unique-value report for each configured column present in the table.
func (s *Summarizer) Summarize(ctx context.Context, t *Table) (*Results, error) {
	results := &Results{
		Rows:           t.Nrow(),
		Columns:        t.Ncol(),
		Info:           Info(t),
		Head:           Head(t, s.headRows),
		NumericColumns: NumericColumns(t),
		Statistics:     SummaryStatistics(t),
		Reports:        make(map[string]ValueReport),
	}

	for _, column := range s.reportColumns {
		if !t.HasColumn(column) {
			s.logger.WarnContext(ctx, "Skipping unique-value report for absent column",
				slog.String("column", column))
			continue
		}
		report, err := UniqueValueReport(t, column)
		if err != nil {
			return nil, err
		}
		results.ReportColumns = append(results.ReportColumns, column)
		results.Reports[column] = report

		s.logger.DebugContext(ctx, "Unique values counted",
			slog.String("column", column),
			slog.Int("unique", report.UniqueCount),
			slog.Int("missing", report.Missing))
	}

	if times, valid, err := t.Times(s.timestampColumn); err == nil {
		for i, ts := range times {
			if !valid[i] {
				continue
			}
			if results.FirstSeen.IsZero() || ts.Before(results.FirstSeen) {
				results.FirstSeen = ts
			}
			if ts.After(results.LastSeen) {
				results.LastSeen = ts
			}
		}
	}

	s.logger.InfoContext(ctx, "Table summarized",
		slog.Int("rows", results.Rows),
		slog.Int("columns", results.Columns),
		slog.Int("numeric_columns", len(results.NumericColumns)),
		slog.Int("reports", len(results.ReportColumns)))

	return results, nil
}

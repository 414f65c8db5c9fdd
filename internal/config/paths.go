package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Paths contains every file path a run writes to.
// All report paths hang off the configured output directory.
type Paths struct {
	OutputDir  string
	FiguresDir string
	TablesDir  string

	// Well-known report files
	SummaryReport  string
	StatisticsCSV  string
	CorrelationCSV string
	Workbook       string
	TraceFile      string
	MetricsFile    string
}

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9_]+`)

// NewPaths returns the report paths rooted at outputDir
func NewPaths(outputDir string) (*Paths, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %v", outputDir, err)
	}

	tablesDir := filepath.Join(abs, "tables")

	return &Paths{
		OutputDir:  abs,
		FiguresDir: filepath.Join(abs, "figures"),
		TablesDir:  tablesDir,

		SummaryReport:  filepath.Join(abs, "summary_report.txt"),
		StatisticsCSV:  filepath.Join(tablesDir, "statistics.csv"),
		CorrelationCSV: filepath.Join(tablesDir, "correlation.csv"),
		Workbook:       filepath.Join(abs, "eda_report.xlsx"),
		TraceFile:      filepath.Join(abs, "telemetry", "trace.json"),
		MetricsFile:    filepath.Join(abs, "telemetry", "metrics.prom"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.FiguresDir,
		p.TablesDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// FrequencyCSVPath returns the frequency table path for a column
func (p *Paths) FrequencyCSVPath(column string) string {
	return filepath.Join(p.TablesDir, fmt.Sprintf("frequencies_%s.csv", safeName(column)))
}

// DistributionFigurePath returns the histogram figure path for a column
func (p *Paths) DistributionFigurePath(column string) string {
	return filepath.Join(p.FiguresDir, fmt.Sprintf("distribution_%s.png", safeName(column)))
}

// CountFigurePath returns the count plot figure path for a column
func (p *Paths) CountFigurePath(column string) string {
	return filepath.Join(p.FiguresDir, fmt.Sprintf("counts_%s.png", safeName(column)))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("output", p.OutputDir),
			slog.String("figures", p.FiguresDir),
			slog.String("tables", p.TablesDir),
		),
		slog.Group("report_files",
			slog.String("summary_report", p.SummaryReport),
			slog.String("statistics_csv", p.StatisticsCSV),
			slog.String("correlation_csv", p.CorrelationCSV),
			slog.String("workbook", p.Workbook),
		))
}

// safeName turns a column name into a lower-case file name fragment
func safeName(column string) string {
	name := unsafeNameRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(column)), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "column"
	}
	return name
}

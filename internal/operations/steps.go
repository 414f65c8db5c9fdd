package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"saleseda/internal/dataprocessing"
	"saleseda/internal/errors"
	"saleseda/internal/exporter"
	"saleseda/internal/infrastructure"
	"saleseda/internal/validation"
	"saleseda/internal/visualization"
	"saleseda/pkg/contracts/domain"
)

// Step IDs
const (
	StepIDLoad      = "load"
	StepIDNormalize = "normalize"
	StepIDSummarize = "summarize"
	StepIDCorrelate = "correlate"
	StepIDQuality   = "quality"
	StepIDVisualize = "visualize"
	StepIDInsights  = "insights"
	StepIDExport    = "export"
)

// Dependencies are shared by the analysis steps
type Dependencies struct {
	Logger  *slog.Logger
	Metrics *infrastructure.PipelineMetrics
}

func (d Dependencies) logger() *slog.Logger {
	return infrastructure.WithComponent(d.Logger, "analysis")
}

// NewAnalysisSteps returns the steps of an analysis run in order
func NewAnalysisSteps(deps Dependencies) []Step {
	return []Step{
		NewLoadStep(deps),
		NewNormalizeStep(deps),
		NewSummarizeStep(deps),
		NewCorrelateStep(deps),
		NewQualityStep(deps),
		NewVisualizeStep(deps),
		NewInsightsStep(deps),
		NewExportStep(deps),
	}
}

// requireTable fails validation when no earlier step produced a table
func requireTable(stepID string, state *OperationState) error {
	if state.Table == nil {
		return NewInvalidStateError(stepID, "no table loaded")
	}
	return nil
}

// requireResults fails validation when the table has not been summarized
func requireResults(stepID string, state *OperationState) error {
	if state.Results == nil {
		return NewInvalidStateError(stepID, "table has not been summarized")
	}
	return nil
}

// LoadStep reads the input file into a table
type LoadStep struct {
	BaseStep
	deps   Dependencies
	loader *dataprocessing.Loader
}

// NewLoadStep creates the load step
func NewLoadStep(deps Dependencies) *LoadStep {
	return &LoadStep{
		BaseStep: NewBaseStep(StepIDLoad, "Load Sales Sample"),
		deps:     deps,
		loader:   dataprocessing.NewLoader(deps.logger()),
	}
}

// Validate checks an input path is configured
func (s *LoadStep) Validate(state *OperationState) error {
	if state.Config == nil || state.Config.Input.Path == "" {
		return NewInvalidStateError(s.ID(), "no input file configured")
	}
	return nil
}

// Execute loads the table
func (s *LoadStep) Execute(ctx context.Context, state *OperationState) error {
	table, err := s.loader.Load(ctx, state.Config.Input.Path)
	if err != nil {
		return err
	}
	state.Table = table

	if s.deps.Metrics != nil {
		s.deps.Metrics.RowsLoaded.Add(ctx, int64(table.Nrow()))
	}
	return nil
}

// NormalizeStep drops the index column, checks the expected columns, parses
// the timestamp and derives the hour of day
type NormalizeStep struct {
	BaseStep
	deps Dependencies
}

// NewNormalizeStep creates the normalize step
func NewNormalizeStep(deps Dependencies) *NormalizeStep {
	return &NormalizeStep{
		BaseStep: NewBaseStep(StepIDNormalize, "Normalize Columns"),
		deps:     deps,
	}
}

// Validate requires a loaded table
func (s *NormalizeStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute normalizes the table in place of the loaded one
func (s *NormalizeStep) Execute(ctx context.Context, state *OperationState) error {
	input := state.Config.Input
	table := state.Table

	var err error
	if input.DropLeadingColumn {
		if table, err = dataprocessing.DropLeadingColumn(table); err != nil {
			return err
		}
	}

	if err := dataprocessing.RequireColumns(table, requiredColumns(input.TimestampColumn)...); err != nil {
		return err
	}

	if table, err = dataprocessing.ParseDatetime(table, input.TimestampColumn, input.TimestampLayout); err != nil {
		return err
	}
	if table, err = dataprocessing.DeriveHour(table, input.TimestampColumn); err != nil {
		return err
	}

	s.deps.logger().InfoContext(ctx, "Columns normalized",
		slog.Int("columns", table.Ncol()),
		slog.Any("names", table.Names()))

	state.Table = table
	return nil
}

// requiredColumns is the expected column set with the configured timestamp column
func requiredColumns(timestampColumn string) []string {
	out := make([]string, len(domain.RequiredColumns))
	for i, column := range domain.RequiredColumns {
		if column == domain.ColumnTimestamp {
			column = timestampColumn
		}
		out[i] = column
	}
	return out
}

// SummarizeStep computes the descriptive views of the table
type SummarizeStep struct {
	BaseStep
	deps Dependencies
}

// NewSummarizeStep creates the summarize step
func NewSummarizeStep(deps Dependencies) *SummarizeStep {
	return &SummarizeStep{
		BaseStep: NewBaseStep(StepIDSummarize, "Summarize"),
		deps:     deps,
	}
}

// Validate requires a loaded table
func (s *SummarizeStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute summarizes the table
func (s *SummarizeStep) Execute(ctx context.Context, state *OperationState) error {
	columns := append([]string{}, domain.IdentifierColumns...)
	columns = append(columns, domain.CategoricalColumns...)
	columns = append(columns, state.Config.Input.TimestampColumn)

	summarizer := dataprocessing.NewSummarizer(s.deps.logger(), dataprocessing.SummarizerConfig{
		ReportColumns:   columns,
		TimestampColumn: state.Config.Input.TimestampColumn,
	})
	results, err := summarizer.Summarize(ctx, state.Table)
	if err != nil {
		return err
	}
	state.Results = results
	return nil
}

// CorrelateStep computes the correlation matrix of the numeric columns
type CorrelateStep struct {
	BaseStep
	deps Dependencies
}

// NewCorrelateStep creates the correlate step
func NewCorrelateStep(deps Dependencies) *CorrelateStep {
	return &CorrelateStep{
		BaseStep: NewBaseStep(StepIDCorrelate, "Correlate"),
		deps:     deps,
	}
}

// Validate requires a summarized table
func (s *CorrelateStep) Validate(state *OperationState) error {
	if err := requireTable(s.ID(), state); err != nil {
		return err
	}
	return requireResults(s.ID(), state)
}

// Execute fills the correlation matrix of the results
func (s *CorrelateStep) Execute(ctx context.Context, state *OperationState) error {
	state.Results.Correlation = dataprocessing.CorrelationMatrix(state.Table)

	logger := s.deps.logger()
	if a, b, r, ok := state.Results.Correlation.StrongestPair(); ok {
		logger.InfoContext(ctx, "Correlation computed",
			slog.Int("columns", len(state.Results.Correlation.Columns)),
			slog.String("strongest_a", a),
			slog.String("strongest_b", b),
			slog.Float64("r", r))
	} else {
		logger.InfoContext(ctx, "Correlation computed without a defined pair",
			slog.Int("columns", len(state.Results.Correlation.Columns)))
	}
	return nil
}

// QualityStep checks the records for invalid fields, repeated ids and totals
// that do not add up. Findings never fail the run.
type QualityStep struct {
	BaseStep
	deps      Dependencies
	validator *validation.RecordValidator
}

// NewQualityStep creates the quality step
func NewQualityStep(deps Dependencies) *QualityStep {
	return &QualityStep{
		BaseStep:  NewBaseStep(StepIDQuality, "Check Data Quality"),
		deps:      deps,
		validator: validation.NewRecordValidator(deps.logger()),
	}
}

// SkipReason skips the check when the timestamp column has been renamed,
// since records are keyed by the canonical column names
func (s *QualityStep) SkipReason(state *OperationState) string {
	if state.Config != nil && state.Config.Input.TimestampColumn != domain.ColumnTimestamp {
		return "timestamp column is not " + domain.ColumnTimestamp
	}
	return ""
}

// Validate requires a loaded table
func (s *QualityStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute converts the table to records and checks them
func (s *QualityStep) Execute(ctx context.Context, state *OperationState) error {
	records, err := dataprocessing.ToRecords(state.Table)
	if err != nil {
		return err
	}

	report := s.validator.CheckQuality(records)
	state.Quality = &report

	if s.deps.Metrics != nil {
		for kind, n := range report.Counts() {
			s.deps.Metrics.QualityFindings.Add(ctx, int64(n),
				metric.WithAttributes(attribute.String("kind", kind)))
		}
	}
	if !report.Clean() {
		s.deps.logger().WarnContext(ctx, "Data quality findings",
			slog.Any("counts", report.Counts()))
	}
	return nil
}

// VisualizeStep renders distribution figures for the numeric measures and
// count figures for the categorical columns. Identifier columns are never plotted.
type VisualizeStep struct {
	BaseStep
	deps Dependencies
}

// NewVisualizeStep creates the visualize step
func NewVisualizeStep(deps Dependencies) *VisualizeStep {
	return &VisualizeStep{
		BaseStep: NewBaseStep(StepIDVisualize, "Render Figures"),
		deps:     deps,
	}
}

// SkipReason skips rendering when figures are disabled
func (s *VisualizeStep) SkipReason(state *OperationState) string {
	if state.Config != nil && !state.Config.Output.Figures {
		return "figures disabled"
	}
	return ""
}

// Validate requires a loaded table and output paths
func (s *VisualizeStep) Validate(state *OperationState) error {
	if state.Paths == nil {
		return NewInvalidStateError(s.ID(), "no output paths")
	}
	return requireTable(s.ID(), state)
}

// Execute writes the figures
func (s *VisualizeStep) Execute(ctx context.Context, state *OperationState) error {
	v := visualization.NewVisualizer(s.deps.logger(), visualization.Config{
		Width:  state.Config.Output.FigureWidth,
		Height: state.Config.Output.FigureHeight,
	})

	var figures []string
	for _, column := range domain.DistributionColumns {
		if !state.Table.HasColumn(column) {
			continue
		}
		path := state.Paths.DistributionFigurePath(column)
		if err := v.PlotDistribution(ctx, state.Table, column, path); err != nil {
			return err
		}
		figures = append(figures, path)
	}

	for _, column := range domain.CategoricalColumns {
		if !state.Table.HasColumn(column) {
			continue
		}
		path := state.Paths.CountFigurePath(column)
		if err := v.PlotCategoryCounts(ctx, state.Table, column, path); err != nil {
			return err
		}
		figures = append(figures, path)
	}

	state.Figures = figures
	state.AddOutputs(figures...)
	if s.deps.Metrics != nil {
		s.deps.Metrics.FiguresRendered.Add(ctx, int64(len(figures)))
	}
	return nil
}

// InsightsStep turns the computed results into observations
type InsightsStep struct {
	BaseStep
	deps Dependencies
}

// NewInsightsStep creates the insights step
func NewInsightsStep(deps Dependencies) *InsightsStep {
	return &InsightsStep{
		BaseStep: NewBaseStep(StepIDInsights, "Derive Insights"),
		deps:     deps,
	}
}

// Validate requires summarized results
func (s *InsightsStep) Validate(state *OperationState) error {
	return requireResults(s.ID(), state)
}

// Execute builds the insights
func (s *InsightsStep) Execute(ctx context.Context, state *OperationState) error {
	insights := dataprocessing.BuildInsights(state.Results)
	state.Insights = &insights

	s.deps.logger().InfoContext(ctx, "Insights derived",
		slog.Int("observations", len(insights.Observations)),
		slog.Int("conclusions", len(insights.Conclusions)))
	return nil
}

// ExportStep writes the summary report, the CSV tables and the workbook
type ExportStep struct {
	BaseStep
	deps      Dependencies
	validator *validation.FileValidator
	now       func() time.Time
}

// NewExportStep creates the export step
func NewExportStep(deps Dependencies) *ExportStep {
	return &ExportStep{
		BaseStep:  NewBaseStep(StepIDExport, "Export Reports"),
		deps:      deps,
		validator: validation.NewFileValidator(deps.logger()),
		now:       time.Now,
	}
}

// Validate requires results and a writable output directory
func (s *ExportStep) Validate(state *OperationState) error {
	if err := requireResults(s.ID(), state); err != nil {
		return err
	}
	if state.Paths == nil {
		return NewInvalidStateError(s.ID(), "no output paths")
	}
	return s.validator.ValidateOutputDirectory(state.Paths.OutputDir)
}

// Execute writes every report
func (s *ExportStep) Execute(ctx context.Context, state *OperationState) error {
	if err := state.Paths.EnsureDirectories(); err != nil {
		return errors.NewStorageError("failed to create output directories", err)
	}

	exp := exporter.NewExporter(state.Paths, s.deps.logger(), state.Config.Output.TopN)
	report := exporter.Report{
		Source:      state.Config.Input.Path,
		GeneratedAt: s.now(),
		Results:     state.Results,
		Quality:     state.Quality,
		Insights:    state.Insights,
		Figures:     state.Figures,
	}

	tables, err := exp.WriteTables(ctx, report)
	state.AddOutputs(tables...)
	if err != nil {
		return err
	}

	if state.Config.Output.Workbook {
		path, err := exp.WriteWorkbook(ctx, report, domain.CategoricalColumns)
		if err != nil {
			return err
		}
		state.AddOutputs(path)
	}

	path, err := exp.WriteSummaryReport(ctx, report)
	if err != nil {
		return err
	}
	state.AddOutputs(path)
	return nil
}

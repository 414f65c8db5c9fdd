// Command eda runs the exploratory analysis of a sales sample and writes its
// reports, tables and figures to an output directory.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"saleseda/internal/config"
	"saleseda/internal/errors"
	"saleseda/internal/infrastructure"
	"saleseda/internal/operations"
	"saleseda/pkg/contracts"
)

// shutdownTimeout bounds the flush of telemetry at exit
const shutdownTimeout = 10 * time.Second

// options are the command line flags
type options struct {
	input      string
	out        string
	configFile string
	noFigures  bool
	noWorkbook bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags reads the command line. Help output goes to stderr.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "", "sales sample to analyze (.csv or .xlsx)")
	fs.StringVar(&opts.out, "out", "", "output directory for reports (defaults to "+config.DefaultOutputDir+")")
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file (defaults to eda.yaml or configs/eda.yaml when present)")
	fs.BoolVar(&opts.noFigures, "no-figures", false, "skip rendering PNG figures")
	fs.BoolVar(&opts.noWorkbook, "no-workbook", false, "skip writing the XLSX workbook")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.input == "" && fs.NArg() == 1 {
		opts.input = fs.Arg(0)
	}
	return opts, nil
}

// applyFlags overlays flags on the loaded configuration; flags win
func applyFlags(cfg *config.Config, opts options) {
	if opts.input != "" {
		cfg.Input.Path = opts.input
	}
	if opts.out != "" {
		cfg.Output.Dir = opts.out
	}
	if opts.noFigures {
		cfg.Output.Figures = false
	}
	if opts.noWorkbook {
		cfg.Output.Workbook = false
	}
}

// loadConfig resolves the configuration from defaults, file, environment and flags
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	paths, err := config.NewPaths(cfg.Output.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "%s: failed to initialize logger: %v\n", config.AppName, err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	runID := infrastructure.GetRunID(ctx)

	logger.InfoContext(ctx, "Starting analysis",
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Input.Path),
		slog.String("output", paths.OutputDir),
		slog.Bool("figures", cfg.Output.Figures),
		slog.Bool("workbook", cfg.Output.Workbook))
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry, paths), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create metrics", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	manager := operations.NewManager(logger, providers.Tracer, metrics)
	for _, step := range operations.NewAnalysisSteps(operations.Dependencies{Logger: logger, Metrics: metrics}) {
		if err := manager.RegisterStep(step); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
			return 1
		}
	}

	state := operations.NewOperationState(runID, cfg, paths)
	if err := manager.Execute(ctx, state); err != nil {
		logger.ErrorContext(ctx, "Analysis failed",
			slog.String("step", operations.FailedStep(err)),
			slog.String("error_type", errorType(err)),
			slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Duration("duration", state.Duration()),
		slog.Int("outputs", len(state.Outputs)))

	fmt.Fprintf(stdout, "Analyzed %d rows from %s\n", state.Results.Rows, cfg.Input.Path)
	fmt.Fprintf(stdout, "Summary report: %s\n", paths.SummaryReport)
	fmt.Fprintf(stdout, "%d files written to %s\n", len(state.Outputs), paths.OutputDir)
	return 0
}

// errorType names the category of the first application error in err's chain
func errorType(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "UNKNOWN"
}

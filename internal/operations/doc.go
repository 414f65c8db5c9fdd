// Package operations runs an analysis as a sequence of steps.
//
// Manager executes registered steps in order against a shared OperationState.
// Each step is validated, executed inside its own OpenTelemetry span, and its
// duration and outcome are recorded as metrics. The first failing step stops
// the run and the steps after it are marked skipped. Steps implementing
// Skipper can be switched off by configuration without failing the run.
//
// The analysis steps are:
//
//	load -> normalize -> summarize -> correlate -> quality -> visualize -> insights -> export
//
// Example usage:
//
//	manager := operations.NewManager(logger, providers.Tracer, metrics)
//	for _, step := range operations.NewAnalysisSteps(operations.Dependencies{Logger: logger, Metrics: metrics}) {
//		if err := manager.RegisterStep(step); err != nil {
//			return err
//		}
//	}
//	state := operations.NewOperationState(runID, cfg, paths)
//	if err := manager.Execute(ctx, state); err != nil {
//		return err
//	}
package operations

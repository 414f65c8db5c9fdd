package operations

import (
	"context"
	"log/slog"
	"time"
)

// logRunStart logs the start of a run
func (m *Manager) logRunStart(ctx context.Context, operationID string) {
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("operation_id", operationID),
		slog.Int("step_count", len(m.steps)))
}

// logRunComplete logs the end of a run
func (m *Manager) logRunComplete(ctx context.Context, operationID string, duration time.Duration, status OperationStatus) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", string(status)),
		slog.Duration("duration", duration))
}

// logStepStart logs the start of a Step execution
func (m *Manager) logStepStart(ctx context.Context, operationID, stepID string, number int) {
	m.logger.InfoContext(ctx, "step_start",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.Int("step_number", number),
		slog.Int("total_steps", len(m.steps)))
}

// logStepComplete logs the completion of a Step execution
func (m *Manager) logStepComplete(ctx context.Context, operationID, stepID string, duration time.Duration) {
	m.logger.InfoContext(ctx, "step_complete",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.Duration("duration", duration))
}

// logStepSkipped logs a step switched off by configuration
func (m *Manager) logStepSkipped(ctx context.Context, operationID, stepID, reason string) {
	m.logger.InfoContext(ctx, "step_skipped",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.String("reason", reason))
}

// logStepError logs a Step error
func (m *Manager) logStepError(ctx context.Context, operationID, stepID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "step_error",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.String("error", errorMsg))
}

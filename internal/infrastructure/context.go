package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateRunID creates a new unique run ID using UUID v4
func GenerateRunID() string {
	return uuid.New().String()
}

// EnsureRunID returns ctx with a run ID, generating one if absent.
// A run without a trace ID reuses the run ID as its trace ID.
func EnsureRunID(ctx context.Context) context.Context {
	runID := GetRunID(ctx)
	if runID == "" {
		runID = GenerateRunID()
		ctx = WithRunID(ctx, runID)
	}
	if GetTraceID(ctx) == "" {
		ctx = WithTraceID(ctx, runID)
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With("component", component)
}

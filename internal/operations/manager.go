package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"saleseda/internal/infrastructure"
)

// Manager runs registered steps one after another. The first failure stops
// the run; steps that did not get to run are marked skipped.
type Manager struct {
	steps   []Step
	ids     map[string]bool
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewManager creates a manager. A nil tracer or metrics disables that signal.
func NewManager(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *Manager {
	logger = infrastructure.WithComponent(logger, "operations")
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Manager{
		ids:     make(map[string]bool),
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// RegisterStep appends a step to the run order
func (m *Manager) RegisterStep(step Step) error {
	if step == nil {
		return fmt.Errorf("cannot register nil step")
	}
	if step.ID() == "" {
		return fmt.Errorf("step ID cannot be empty")
	}
	if m.ids[step.ID()] {
		return fmt.Errorf("step %s already registered", step.ID())
	}
	m.ids[step.ID()] = true
	m.steps = append(m.steps, step)
	return nil
}

// Steps returns the registered steps in run order
func (m *Manager) Steps() []Step {
	return append([]Step(nil), m.steps...)
}

// Execute runs every step against state
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	for _, step := range m.steps {
		if state.GetStep(step.ID()) == nil {
			state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))
		}
	}

	ctx, span := m.traceRun(ctx, state)
	defer span.End()

	state.Start()
	m.logRunStart(ctx, state.ID)

	err := m.executeSequential(ctx, state)
	if err != nil {
		state.Fail(err)
	} else {
		state.Complete()
	}

	m.recordRunCompletion(ctx, span, state, err)
	m.logRunComplete(ctx, state.ID, state.Duration(), state.Status)
	return err
}

func (m *Manager) executeSequential(ctx context.Context, state *OperationState) error {
	for i, step := range m.steps {
		if err := ctx.Err(); err != nil {
			m.skipRemaining(state, i, "operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		stepState := state.GetStep(step.ID())

		if skipper, ok := step.(Skipper); ok {
			if reason := skipper.SkipReason(state); reason != "" {
				stepState.Skip(reason)
				m.logStepSkipped(ctx, state.ID, step.ID(), reason)
				continue
			}
		}

		m.logStepStart(ctx, state.ID, step.ID(), i+1)
		if err := m.executeStep(ctx, state, step, stepState); err != nil {
			m.logStepError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(state, i+1, fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
		m.logStepComplete(ctx, state.ID, step.ID(), stepState.Duration())
	}
	return nil
}

// executeStep validates and runs one step inside its own span
func (m *Manager) executeStep(ctx context.Context, state *OperationState, step Step, stepState *StepState) error {
	ctx, span := m.traceStep(ctx, state, step)
	defer span.End()

	start := time.Now()
	stepState.Start()

	var err error
	if verr := step.Validate(state); verr != nil {
		err = NewValidationError(step.ID(), verr)
	} else if xerr := step.Execute(ctx, state); xerr != nil {
		err = NewExecutionError(step.ID(), xerr)
	}

	if err != nil {
		stepState.Fail(err)
	} else {
		stepState.Complete("")
	}
	m.recordStepCompletion(ctx, span, step, time.Since(start), err)
	return err
}

func (m *Manager) skipRemaining(state *OperationState, from int, reason string) {
	for _, step := range m.steps[from:] {
		if s := state.GetStep(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(reason)
		}
	}
}

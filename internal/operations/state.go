package operations

import (
	"sync"
	"time"

	"saleseda/internal/config"
	"saleseda/internal/dataprocessing"
	"saleseda/internal/validation"
)

// OperationStatus represents the overall operation status
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
)

// OperationState carries the data of one analysis run from step to step.
// Each step reads what earlier steps left and fills in its own part.
type OperationState struct {
	mu sync.RWMutex

	ID        string          `json:"id"`
	Status    OperationStatus `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Error     error           `json:"-"`

	Steps map[string]*StepState `json:"steps"`

	// Run inputs
	Config *config.Config `json:"-"`
	Paths  *config.Paths  `json:"-"`

	// Step outputs
	Table    *dataprocessing.Table     `json:"-"`
	Results  *dataprocessing.Results   `json:"results,omitempty"`
	Quality  *validation.QualityReport `json:"quality,omitempty"`
	Insights *dataprocessing.Insights  `json:"insights,omitempty"`
	Figures  []string                  `json:"figures,omitempty"`
	Outputs  []string                  `json:"outputs,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string, cfg *config.Config, paths *config.Paths) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Config:    cfg,
		Paths:     paths,
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// GetStep returns the state of a specific Step
func (p *OperationState) GetStep(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStep updates the state of a specific Step
func (p *OperationState) SetStep(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps[stepID] = state
}

// AddOutputs records files written by a step
func (p *OperationState) AddOutputs(paths ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Outputs = append(p.Outputs, paths...)
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

package engine

import (
	"time"

	"github.com/kingrea/wheelhouse/internal/step"
)

// EngineStatus summarizes a run's terminal condition.
type EngineStatus string

const (
	EngineStatusRunning   EngineStatus = "running"
	EngineStatusCompleted EngineStatus = "completed"
	EngineStatusFailed    EngineStatus = "failed"
	EngineStatusCancelled EngineStatus = "cancelled"
)

// StepRecord captures one step's outcome within a run.
type StepRecord struct {
	ID         string
	Status     step.Status
	Message    string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the wall-clock time the step took.
func (r StepRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// State describes a single workflow run.
type State struct {
	RunID      string
	WorkflowID string
	Status     EngineStatus
	Records    []StepRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// Record returns the record for a step ID, if the step ran.
func (s State) Record(id string) (StepRecord, bool) {
	for _, rec := range s.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return StepRecord{}, false
}

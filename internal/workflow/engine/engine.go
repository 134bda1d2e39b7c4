package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/wheelhouse/internal/logbook"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/workflow"
)

// ErrStepFailed wraps every step failure the engine surfaces, so callers can
// distinguish pipeline failures from engine misconfiguration.
var ErrStepFailed = errors.New("step failed")

// Engine resolves steps from the registry and runs them in order.
type Engine struct {
	registry *step.Registry
	clock    func() time.Time
}

// Option customizes the engine instance.
type Option func(*Engine)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New wires a workflow engine to the step registry.
func New(registry *step.Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("workflow engine: step registry is required")
	}
	engine := &Engine{
		registry: registry,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// Run executes a workflow definition from scratch. Step failure aborts the
// remaining steps and is returned as an error wrapping ErrStepFailed; a
// cancelled step aborts the remaining steps without an error.
func (e *Engine) Run(ctx *step.Context, def workflow.Definition) (State, error) {
	if ctx == nil {
		return State{}, fmt.Errorf("workflow engine: step context is required")
	}
	normalized, err := def.Normalized()
	if err != nil {
		return State{}, err
	}
	for _, id := range normalized.Steps {
		if !e.registry.Known(id) {
			return State{}, fmt.Errorf("workflow %s: no step registered for %s", normalized.ID, id)
		}
	}

	now := e.clock()
	state := State{
		RunID:      generateRunID(normalized.ID, now),
		WorkflowID: normalized.ID,
		Status:     EngineStatusRunning,
		StartedAt:  now,
	}
	runCtx := ctx.WithRunID(state.RunID)
	if ctx.Config != nil {
		// Each run gets its own record under .wheelhouse/logs.
		book, err := logbook.New(filepath.Join(ctx.Config.LogsDir(), "run-"+state.RunID+".log"))
		if err != nil {
			return State{}, fmt.Errorf("workflow %s: open run log: %w", normalized.ID, err)
		}
		runCtx = runCtx.WithLogbook(book)
	}
	runCtx.Logbook.Info("run %s started (%d steps)", state.RunID, len(normalized.Steps))

	for _, id := range normalized.Steps {
		resolved, err := e.registry.Resolve(id, nil)
		if err != nil {
			state.Status = EngineStatusFailed
			state.FinishedAt = e.clock()
			return state, err
		}

		rec := StepRecord{ID: id, StartedAt: e.clock()}
		runCtx.Logbook.Info("step %s: %s", id, resolved.Info().Name)
		result, runErr := resolved.Run(runCtx)
		rec.Status = result.Status
		rec.Message = result.Message
		rec.FinishedAt = e.clock()

		if runErr != nil {
			if rec.Status == "" {
				rec.Status = step.StatusFailed
			}
			if rec.Message == "" {
				rec.Message = runErr.Error()
			}
			state.Records = append(state.Records, rec)
			state.Status = EngineStatusFailed
			state.FinishedAt = e.clock()
			runCtx.Logbook.Error("step %s: %v", id, runErr)
			return state, fmt.Errorf("workflow %s: step %s: %v: %w", normalized.ID, id, runErr, ErrStepFailed)
		}

		state.Records = append(state.Records, rec)
		switch result.Status {
		case step.StatusCompleted, step.StatusNoOp:
			runCtx.Logbook.Info("step %s %s", id, result.Status)
		case step.StatusCancelled:
			state.Status = EngineStatusCancelled
			state.FinishedAt = e.clock()
			runCtx.Logbook.Warn("step %s cancelled: %s", id, result.Message)
			return state, nil
		default:
			state.Status = EngineStatusFailed
			state.FinishedAt = e.clock()
			runCtx.Logbook.Error("step %s failed: %s", id, result.Message)
			return state, fmt.Errorf("workflow %s: step %s: %s: %w", normalized.ID, id, result.Message, ErrStepFailed)
		}
	}

	state.Status = EngineStatusCompleted
	state.FinishedAt = e.clock()
	runCtx.Logbook.Info("run %s completed", state.RunID)
	return state, nil
}

func generateRunID(workflowID string, now time.Time) string {
	base := strings.TrimSpace(workflowID)
	if base == "" {
		base = "workflow"
	}
	base = strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	return fmt.Sprintf("%s-%s", base, now.UTC().Format("20060102-150405"))
}

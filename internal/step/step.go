package step

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/artifact"
)

// Info describes a step's identity and intent.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("step: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("step: name is required for %s", i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("step: version is required for %s", i.ID)
	}
	return nil
}

// Result captures the outcome of a step execution.
type Result struct {
	Status  Status
	Message string
}

// Status enumerates step run outcomes.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusNoOp      Status = "no-op"
	// StatusCancelled is the operator declining to proceed. It terminates the
	// workflow like a failure but exits the process with success.
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Step is implemented by every runtime unit in a workflow.
type Step interface {
	Info() Info
	Inputs() []artifact.Ref
	Outputs() []artifact.Ref
	Run(ctx *Context) (Result, error)
}

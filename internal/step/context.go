package step

import (
	"context"
	"io"
	"os"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/config"
	"github.com/kingrea/wheelhouse/internal/logbook"
	"github.com/kingrea/wheelhouse/internal/toolchain"
)

// Confirmer answers the single interactive question in the system: whether
// the operator wants the built artifacts uploaded.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Context carries shared runtime dependencies into every step.
type Context struct {
	Ctx       context.Context
	Config    *config.Config
	Runner    toolchain.Runner
	Artifacts *artifact.Store
	Logbook   *logbook.Logbook
	Confirm   Confirmer
	Out       io.Writer
	RunID     string
}

// NewContext builds a Context with a fresh artifact store and stdout console.
func NewContext(ctx context.Context, cfg *config.Config, runner toolchain.Runner, lb *logbook.Logbook) *Context {
	return &Context{
		Ctx:       ctx,
		Config:    cfg,
		Runner:    runner,
		Artifacts: artifact.NewStore(cfg),
		Logbook:   lb,
		Out:       os.Stdout,
	}
}

// WithArtifacts allows dependency injection of a pre-built store.
func (c *Context) WithArtifacts(store *artifact.Store) *Context {
	clone := *c
	clone.Artifacts = store
	return &clone
}

// WithConfirmer attaches the interactive confirmation provider.
func (c *Context) WithConfirmer(confirm Confirmer) *Context {
	clone := *c
	clone.Confirm = confirm
	return &clone
}

// WithOut redirects console output (tests).
func (c *Context) WithOut(out io.Writer) *Context {
	clone := *c
	clone.Out = out
	return &clone
}

// WithLogbook swaps in a different run record, typically the per-run file
// the engine opens once the run ID is known.
func (c *Context) WithLogbook(lb *logbook.Logbook) *Context {
	clone := *c
	clone.Logbook = lb
	return &clone
}

// WithRunID records the engine-assigned run identifier.
func (c *Context) WithRunID(id string) *Context {
	clone := *c
	clone.RunID = id
	return &clone
}

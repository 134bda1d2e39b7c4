package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kingrea/wheelhouse/internal/config"
	"github.com/kingrea/wheelhouse/internal/logging"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/steps/build"
	"github.com/kingrea/wheelhouse/internal/steps/check"
	"github.com/kingrea/wheelhouse/internal/steps/entrypoint"
	"github.com/kingrea/wheelhouse/internal/steps/importprobe"
	"github.com/kingrea/wheelhouse/internal/steps/install"
	"github.com/kingrea/wheelhouse/internal/steps/preflight"
	"github.com/kingrea/wheelhouse/internal/steps/publish"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
	"github.com/kingrea/wheelhouse/internal/workflow"
	"github.com/kingrea/wheelhouse/internal/workflow/engine"
)

// timeResolution keeps step durations readable in the summary.
const timeResolution = 10 * time.Millisecond

// session holds everything a single CLI invocation needs to run a workflow
// against the current working directory.
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	engine  *engine.Engine
	library *workflow.Library
}

// newSession prepares the .wheelhouse directory, loads configuration, opens
// the log sinks, and registers every built-in step.
func newSession(configPath string) (*session, error) {
	projectDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cli: resolve working directory: %w", err)
	}
	if err := config.InitWheelhouseDir(projectDir); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.NewConfigFromFile(projectDir, configPath)
	} else {
		cfg, err = config.NewConfig(projectDir)
	}
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(projectDir)
	if err != nil {
		return nil, err
	}

	registry := step.NewRegistry()
	preflight.Register(registry)
	build.Register(registry)
	check.Register(registry)
	install.Register(registry)
	importprobe.Register(registry)
	entrypoint.Register(registry)
	publish.Register(registry)

	eng, err := engine.New(registry)
	if err != nil {
		logger.Close()
		return nil, err
	}
	library, err := workflow.NewLibrary(filepath.Join(cfg.WheelhouseProjectDir, workflow.CustomDir))
	if err != nil {
		logger.Close()
		return nil, err
	}

	logger.Printf("session opened for %s", cfg.Project.Project.Name)
	return &session{cfg: cfg, logger: logger, engine: eng, library: library}, nil
}

func (s *session) close() {
	if s.logger != nil {
		s.logger.Close()
	}
}

// run executes one workflow with live tool output echoed to the terminal and
// a summary printed at the end. Cancellation is not an error; step failures
// are.
func (s *session) run(ctx context.Context, def workflow.Definition, confirm step.Confirmer) error {
	// The engine opens the per-run logbook once it has a run ID.
	runner := &toolchain.ExecRunner{Echo: os.Stdout}
	stepCtx := step.NewContext(ctx, s.cfg, runner, nil).WithConfirmer(confirm)

	state, err := s.engine.Run(stepCtx, def)
	renderSummary(os.Stdout, state)
	if err != nil {
		s.logger.Printf("run %s: %v", state.RunID, err)
	}
	return err
}

func renderSummary(w io.Writer, state engine.State) {
	if len(state.Records) == 0 {
		return
	}
	tui.Printf(w, "")
	for _, rec := range state.Records {
		line := fmt.Sprintf("%s (%s)", rec.ID, rec.Duration().Round(timeResolution))
		switch rec.Status {
		case step.StatusCompleted, step.StatusNoOp:
			tui.Printf(w, "%s", tui.Success(line))
		case step.StatusCancelled:
			tui.Printf(w, "%s", tui.Warning(line+" cancelled"))
		default:
			tui.Printf(w, "%s", tui.Failure(line))
			if rec.Message != "" {
				tui.Printf(w, "%s", tui.Hint(rec.Message))
			}
		}
	}
	switch state.Status {
	case engine.EngineStatusCompleted:
		tui.Printf(w, "%s", tui.Success(fmt.Sprintf("run %s completed", state.RunID)))
	case engine.EngineStatusCancelled:
		tui.Printf(w, "%s", tui.Warning(fmt.Sprintf("run %s cancelled", state.RunID)))
	case engine.EngineStatusFailed:
		tui.Printf(w, "%s", tui.Failure(fmt.Sprintf("run %s failed", state.RunID)))
	}
}

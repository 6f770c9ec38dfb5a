// Package postbuild runs the steps that follow a site build, in order,
// stopping at the first failure.
package postbuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/Bitlatte/quill/internal/logger"
)

// Step is one unit of post-build work.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

// StepError identifies the step that stopped the pipeline.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("post-build step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Func adapts a function into a Step.
type Func struct {
	StepName string
	Fn       func(ctx context.Context) error
}

func (f Func) Name() string { return f.StepName }

func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }

// Command runs an external program with the caller's environment and
// standard streams. Spawn failures and non-zero exits are both errors.
type Command struct {
	Path string
	Args []string
	Dir  string
}

func (c Command) Name() string { return c.Path }

func (c Command) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with code %d: %w", c.Path, exitErr.ExitCode(), err)
		}
		return fmt.Errorf("failed to start %s: %w", c.Path, err)
	}
	return nil
}

// Run executes steps sequentially. The first failing step aborts the rest
// and is returned as a *StepError.
func Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		log := logger.WithStep(step.Name())
		log.Info("running post-build step")
		started := time.Now()

		if err := step.Run(ctx); err != nil {
			log.Error("post-build step failed", slog.Any("error", err))
			return &StepError{Step: step.Name(), Err: err}
		}
		log.Info("post-build step finished", slog.Duration("took", time.Since(started)))
	}
	logger.Info("all post-build steps completed", slog.Int("steps", len(steps)))
	return nil
}

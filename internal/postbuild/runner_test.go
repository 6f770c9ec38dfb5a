package postbuild

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordStep(name string, calls *[]string, err error) Step {
	return Func{StepName: name, Fn: func(context.Context) error {
		*calls = append(*calls, name)
		return err
	}}
}

func TestRun_Sequential(t *testing.T) {
	var calls []string
	err := Run(context.Background(),
		recordStep("rss", &calls, nil),
		recordStep("sitemap", &calls, nil),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"rss", "sitemap"}, calls)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("disk full")

	err := Run(context.Background(),
		recordStep("rss", &calls, boom),
		recordStep("sitemap", &calls, nil),
	)
	require.Error(t, err)
	assert.Equal(t, []string{"rss"}, calls, "later steps must not run")

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "rss", stepErr.Step)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"rss"`)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRun_NoSteps(t *testing.T) {
	assert.NoError(t, Run(context.Background()))
}

func TestCommand_SpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	err := Run(context.Background(), Command{Path: missing})
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, missing, stepErr.Step)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestCommand_NonZeroExit(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	err = Run(context.Background(), Command{Path: sh, Args: []string{"-c", "exit 3"}})
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "exited with code 3")
}

func TestCommand_Success(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	assert.NoError(t, Run(context.Background(), Command{Path: sh, Args: []string{"-c", "exit 0"}}))
}

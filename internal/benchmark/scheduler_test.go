package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/shell"
	"github.com/shravanasati/atomic/v2/internal/timer"
)

type recordingSink struct {
	writes   []int
	finished []*Result
	err      error
}

func (s *recordingSink) Write(results []*Result) error {
	s.writes = append(s.writes, len(results))
	return s.err
}

func (s *recordingSink) Finish(results []*Result) error {
	s.finished = results
	return nil
}

func commands(expressions ...string) []command.Command {
	cmds := make([]command.Command, len(expressions))
	for i, e := range expressions {
		cmds[i] = command.New(e, "")
	}
	return cmds
}

func TestSchedulerPrepareMismatchRunsNothing(t *testing.T) {
	exec := newFakeExecutor()
	opts := quietOptions()
	opts.Prepare = []string{"p1", "p2"}
	s := &Scheduler{Options: opts, Shell: shell.Default(), Executor: exec}

	results, err := s.Run(context.Background(), commands("a", "b", "c"))
	assert.ErrorIs(t, err, ErrPrepareCountMismatch)
	assert.Nil(t, results)
	assert.Empty(t, exec.calls)
}

func TestSchedulerContinuesAfterFailedCommand(t *testing.T) {
	exec := newFakeExecutor().exits("bad", 1)
	opts := quietOptions()
	opts.SetRuns(2)
	sink := &recordingSink{}
	s := &Scheduler{Options: opts, Executor: exec, Sink: sink}

	results, err := s.Run(context.Background(), commands("a", "bad", "c"))

	var failed *CommandFailedError
	require.True(t, errors.As(err, &failed), "got %v", err)
	assert.Equal(t, "bad", failed.Command)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Command)
	assert.Equal(t, "c", results[1].Command)
	assert.Equal(t, []int{1, 2}, sink.writes)
	assert.Equal(t, results, sink.finished)
}

func TestSchedulerCalibratesShell(t *testing.T) {
	exec := newFakeExecutor().constant("a", 0.05)
	exec.scripts[""] = func(int) (timer.Sample, error) {
		return timer.Sample{WallTime: 0.01}, nil
	}
	opts := quietOptions()
	opts.SetRuns(3)
	s := &Scheduler{Options: opts, Shell: shell.Default(), Executor: exec}

	results, err := s.Run(context.Background(), commands("a"))
	require.NoError(t, err)
	assert.Equal(t, CALIBRATION_RUNS, exec.counts[""])
	require.Len(t, results, 1)
	assert.InDelta(t, 0.04, results[0].Mean, 1e-12)
	assert.Equal(t, "", exec.calls[0])
}

func TestSchedulerWithoutShellSkipsCalibration(t *testing.T) {
	exec := newFakeExecutor()
	opts := quietOptions()
	opts.SetRuns(1)
	s := &Scheduler{Options: opts, Executor: exec}

	_, err := s.Run(context.Background(), commands("a"))
	require.NoError(t, err)
	assert.Zero(t, exec.counts[""])
}

func TestSchedulerAbortsOnSetupFailure(t *testing.T) {
	exec := newFakeExecutor().exits("setup", 1)
	opts := quietOptions()
	opts.Setup = "setup"
	s := &Scheduler{Options: opts, Executor: exec}

	results, err := s.Run(context.Background(), commands("a", "b"))
	var failed *AuxiliaryFailedError
	assert.True(t, errors.As(err, &failed), "got %v", err)
	assert.Empty(t, results)
	assert.Zero(t, exec.counts["a"])
	assert.Zero(t, exec.counts["b"])
}

func TestSchedulerSinkError(t *testing.T) {
	sinkErr := errors.New("disk full")
	opts := quietOptions()
	opts.SetRuns(1)
	s := &Scheduler{Options: opts, Executor: newFakeExecutor(), Sink: &recordingSink{err: sinkErr}}

	results, err := s.Run(context.Background(), commands("a", "b"))
	assert.ErrorIs(t, err, sinkErr)
	assert.Len(t, results, 1)
}

func TestSchedulerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := newFakeExecutor()
	s := &Scheduler{Options: quietOptions(), Executor: exec}
	_, err := s.Run(ctx, commands("a"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exec.calls)
}

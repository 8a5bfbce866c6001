package benchmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/shell"
	"github.com/shravanasati/atomic/v2/internal/timer"
)

// ResultSink receives results as they are produced, e.g. an export manager.
type ResultSink interface {
	// Write is called after every finished command with all results so far.
	Write(results []*Result) error
	// Finish is called once with all results after the last command.
	Finish(results []*Result) error
}

// Scheduler benchmarks a set of commands one after another.
type Scheduler struct {
	Options Options
	Shell   shell.Shell
	// Executor defaults to a timer.ProcessTimer using Shell.
	Executor timer.Executor
	// Sink may be nil.
	Sink ResultSink
	// Progress defaults to NewProgress(Options).
	Progress Progress
}

// Run calibrates the shell once, then benchmarks the commands in order. A command
// failing with a non-zero exit code (see Options.FailOnError) does not stop the
// others; those failures are joined into the returned error. Any other error aborts
// the whole run. The results of all completed benchmarks are always returned.
func (s *Scheduler) Run(ctx context.Context, commands []command.Command) ([]*Result, error) {
	if err := s.Options.Validate(len(commands)); err != nil {
		return nil, err
	}
	if s.Executor == nil {
		s.Executor = timer.New(s.Shell, s.Options.ShowOutput)
	}
	if s.Progress == nil {
		s.Progress = NewProgress(s.Options)
	}

	var calibration Calibration
	if s.Shell.Enabled() {
		var err error
		calibration, err = Calibrate(ctx, s.Executor, CALIBRATION_RUNS, s.Progress)
		if err != nil {
			return nil, err
		}
	}

	runner := &Runner{
		Executor:    s.Executor,
		Calibration: calibration,
		Options:     s.Options,
		Progress:    s.Progress,
	}

	var results []*Result
	var failures []error
	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		PrintHeader(i, cmd, s.Options)
		result, err := runner.Run(ctx, i, cmd)
		if err != nil {
			var failed *CommandFailedError
			if errors.As(err, &failed) {
				if s.Options.Style != StyleDisabled {
					internal.Log("red", fmt.Sprintf("Benchmark %d: %s", i+1, err.Error()))
				}
				failures = append(failures, err)
				continue
			}
			return results, fmt.Errorf("benchmark of `%s` failed: %w", cmd.Name, err)
		}

		results = append(results, result)
		PrintResult(i, result, s.Options)
		PrintWarnings(Warnings(result, s.Options), s.Options)

		if s.Sink != nil {
			if err := s.Sink.Write(results); err != nil {
				return results, err
			}
		}
	}

	PrintComparison(results, s.Options)

	if s.Sink != nil {
		if err := s.Sink.Finish(results); err != nil {
			return results, err
		}
	}
	return results, errors.Join(failures...)
}

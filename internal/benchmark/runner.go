package benchmark

import (
	"context"
	"fmt"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/timer"
)

// Runner benchmarks a single command.
type Runner struct {
	Executor    timer.Executor
	Calibration Calibration
	Options     Options
	Progress    Progress
}

// Run benchmarks cmd, the index-th command of the set: setup, warmup, the timed
// runs and cleanup, in that order. Preparation commands run before every warmup and
// timed run and are not measured. Cleanup runs whenever setup succeeded, its failure
// is logged but never replaces the benchmark's own outcome.
//
// Cancelling ctx stops the benchmark before the next run.
func (r *Runner) Run(ctx context.Context, index int, cmd command.Command) (*Result, error) {
	if r.Progress == nil {
		r.Progress = nopProgress{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if setup := r.Options.Setup; setup != "" {
		if err := r.runAuxiliary("setup", cmd.Substitute(setup)); err != nil {
			return nil, err
		}
	}
	if cleanup := r.Options.Cleanup; cleanup != "" {
		defer func() {
			if err := r.runAuxiliary("cleanup", cmd.Substitute(cleanup)); err != nil {
				internal.Log("red", "Cleanup failed: "+err.Error())
			}
		}()
	}

	prepare := ""
	if p := r.Options.prepareFor(index); p != "" {
		prepare = cmd.Substitute(p)
	}

	if err := r.warmup(ctx, cmd, prepare); err != nil {
		return nil, err
	}
	return r.measure(ctx, cmd, prepare)
}

func (r *Runner) runAuxiliary(phase, cmdString string) error {
	sample, err := r.Executor.Run(cmdString)
	if err != nil {
		return fmt.Errorf("unable to run the %s command: %w", phase, err)
	}
	if !sample.Exit.Success() {
		return &AuxiliaryFailedError{Phase: phase, Command: cmdString, ExitCode: sample.Exit.Code}
	}
	return nil
}

// runOnce runs the preparation command, then cmd.
func (r *Runner) runOnce(cmd command.Command, prepare string) (timer.Sample, error) {
	if prepare != "" {
		if err := r.runAuxiliary("prepare", prepare); err != nil {
			return timer.Sample{}, err
		}
	}
	sample, err := r.Executor.Run(cmd.Expression)
	if err != nil {
		return timer.Sample{}, fmt.Errorf("unable to run `%s`: %w", cmd.Expression, err)
	}
	if !sample.Exit.Success() && r.Options.FailOnError {
		return timer.Sample{}, &CommandFailedError{Command: cmd.Name, ExitCode: sample.Exit.Code}
	}
	return sample, nil
}

func (r *Runner) warmup(ctx context.Context, cmd command.Command, prepare string) error {
	if r.Options.Warmup == 0 {
		return nil
	}
	r.Progress.Start(WarmupMode, r.Options.Warmup)
	defer r.Progress.Finish()

	for i := 0; i < r.Options.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Progress.Next()
		if _, err := r.runOnce(cmd, prepare); err != nil {
			return err
		}
		r.Progress.Advance(0)
	}
	return nil
}

// measure performs the timed runs until both MinRuns and MinBenchmarkingTime of
// recorded time are reached, never more than Options.upperRuns, so the loop always
// terminates. The first run only estimates the total for the progress display.
func (r *Runner) measure(ctx context.Context, cmd command.Command, prepare string) (*Result, error) {
	r.Progress.Start(MainMode, -1)
	defer r.Progress.Finish()

	var wall, user, system []float64
	var exitCodes []int
	var total float64

	upper := r.Options.upperRuns()
	estimated := 0
	for run := 0; run < upper && !r.Options.satisfied(run, total); run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Progress.Next()

		sample, err := r.runOnce(cmd, prepare)
		if err != nil {
			return nil, err
		}
		w, u, s := r.Calibration.subtract(sample)
		total += w
		wall = append(wall, w)
		user = append(user, u)
		system = append(system, s)
		exitCodes = append(exitCodes, sample.Exit.Code)

		if run == 0 {
			estimated = r.Options.targetRuns(sample.WallTime)
			r.Progress.SetTotal(estimated)
		} else if run >= estimated {
			estimated = run + 1
			r.Progress.SetTotal(estimated)
		}
		r.Progress.Advance(total / float64(len(wall)))
	}

	return newResult(cmd, wall, user, system, exitCodes)
}

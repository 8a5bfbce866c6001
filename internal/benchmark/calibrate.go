package benchmark

import (
	"context"
	"fmt"

	"github.com/shravanasati/atomic/v2/internal/stats"
	"github.com/shravanasati/atomic/v2/internal/timer"
)

// CALIBRATION_RUNS is how often the empty command is spawned to measure the shell.
const CALIBRATION_RUNS = 50

// Calibration is the mean cost, in seconds, of spawning the shell with an empty
// command. It is subtracted from every timed run.
type Calibration struct {
	WallTime   float64
	UserTime   float64
	SystemTime float64
}

// Calibrate spawns the shell with an empty command runs times and returns the mean
// costs. Failing to spawn the shell at all is fatal.
func Calibrate(ctx context.Context, exec timer.Executor, runs int, progress Progress) (Calibration, error) {
	if progress == nil {
		progress = nopProgress{}
	}
	progress.Start(ShellMode, runs)
	defer progress.Finish()

	wall := make([]float64, 0, runs)
	user := make([]float64, 0, runs)
	system := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return Calibration{}, err
		}
		progress.Next()
		sample, err := exec.Run("")
		if err != nil {
			return Calibration{}, fmt.Errorf("could not measure shell spawn time: %w", err)
		}
		wall = append(wall, sample.WallTime)
		user = append(user, sample.UserTime)
		system = append(system, sample.SystemTime)
		progress.Advance(stats.Mean(wall))
	}

	if len(wall) == 0 {
		return Calibration{}, nil
	}
	return Calibration{
		WallTime:   stats.Mean(wall),
		UserTime:   stats.Mean(user),
		SystemTime: stats.Mean(system),
	}, nil
}

// subtract removes the calibrated overhead from a sample, never going below zero.
func (c Calibration) subtract(sample timer.Sample) (wall, user, system float64) {
	return max(0, sample.WallTime-c.WallTime),
		max(0, sample.UserTime-c.UserTime),
		max(0, sample.SystemTime-c.SystemTime)
}

package benchmark

import (
	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/stats"
)

// Result is the summary of one command's benchmark. Times are in seconds.
// It is never modified once created.
type Result struct {
	// Command is the command's display name.
	Command string `json:"command" yaml:"command"`
	// Expression is the executed command string.
	Expression string  `json:"-" yaml:"-"`
	Mean       float64 `json:"mean" yaml:"mean"`
	// StdDev is nil when fewer than two samples were retained.
	StdDev     *float64 `json:"stddev" yaml:"stddev"`
	Median     float64  `json:"median" yaml:"median"`
	UserMean   float64  `json:"user" yaml:"user"`
	SystemMean float64  `json:"system" yaml:"system"`
	Min        float64  `json:"min" yaml:"min"`
	Max        float64  `json:"max" yaml:"max"`
	// Times holds every recorded run, outliers included.
	Times      []float64         `json:"times" yaml:"times"`
	ExitCodes  []int             `json:"exit_codes" yaml:"exit_codes"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// newResult aggregates the recorded runs of cmd. Mean, median and standard deviation
// are computed over the runs left after outlier removal, min and max over all runs.
func newResult(cmd command.Command, wall, user, system []float64, exitCodes []int) (*Result, error) {
	if len(wall) == 0 {
		return nil, ErrNoSamples
	}

	retained, _ := stats.DetectOutliers(wall)
	lo, hi := stats.MinMax(wall)

	return &Result{
		Command:    cmd.Name,
		Expression: cmd.Expression,
		Mean:       stats.Mean(retained),
		StdDev:     stats.StdDev(retained),
		Median:     stats.Median(retained),
		UserMean:   stats.Mean(user),
		SystemMean: stats.Mean(system),
		Min:        lo,
		Max:        hi,
		Times:      wall,
		ExitCodes:  exitCodes,
		Parameters: cmd.ParameterMap(),
	}, nil
}

// OutlierCount is the number of runs excluded from the mean.
func (r *Result) OutlierCount() int {
	_, outliers := stats.DetectOutliers(r.Times)
	return len(outliers)
}

// Runs is the number of timed runs.
func (r *Result) Runs() int {
	return len(r.Times)
}

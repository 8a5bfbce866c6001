package benchmark

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DEFAULT_MIN_RUNS is the smallest number of timed runs in automatic mode.
	DEFAULT_MIN_RUNS = 10
	// DEFAULT_MIN_BENCHMARKING_TIME is how long, in seconds, a benchmark runs at least in automatic mode.
	DEFAULT_MIN_BENCHMARKING_TIME = 3.0
	// MAX_AUTO_RUNS bounds the timed runs when no maximum is configured.
	MAX_AUTO_RUNS = 100000
)

// OutputStyle controls how much is printed while benchmarking.
type OutputStyle int

const (
	// StyleFull shows progress bars, summaries, warnings and the comparison.
	StyleFull OutputStyle = iota
	// StyleBasic is StyleFull without progress bars.
	StyleBasic
	// StyleNoWarnings is StyleFull without warnings.
	StyleNoWarnings
	// StyleDisabled prints nothing but errors.
	StyleDisabled
)

// ParseOutputStyle reads a --style value.
func ParseOutputStyle(s string) (OutputStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return StyleFull, nil
	case "basic":
		return StyleBasic, nil
	case "nowarnings", "no-warnings":
		return StyleNoWarnings, nil
	case "none", "disabled":
		return StyleDisabled, nil
	default:
		return StyleFull, fmt.Errorf("invalid output style: %s", s)
	}
}

func (s OutputStyle) String() string {
	switch s {
	case StyleBasic:
		return "basic"
	case StyleNoWarnings:
		return "nowarnings"
	case StyleDisabled:
		return "none"
	default:
		return "full"
	}
}

// Options configures a benchmark. Times are in seconds.
type Options struct {
	// Warmup is the number of untimed runs before measuring.
	Warmup int
	// MinRuns is the smallest number of timed runs.
	MinRuns int
	// MaxRuns is the largest number of timed runs, 0 for no limit.
	MaxRuns int
	// MinBenchmarkingTime is the time the timed runs should at least take together.
	MinBenchmarkingTime float64
	// FailOnError aborts a command's benchmark when it exits non-zero.
	FailOnError bool
	// ShowOutput forwards the commands' output to the terminal.
	ShowOutput bool
	// Prepare holds zero, one, or one-per-command preparation commands, run before
	// every warmup and timed run.
	Prepare []string
	// Setup runs once before each command's benchmark.
	Setup string
	// Cleanup runs once after each command's benchmark.
	Cleanup string
	Style   OutputStyle
	// TimeUnit for output, 0 picks one automatically.
	TimeUnit time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Warmup:              0,
		MinRuns:             DEFAULT_MIN_RUNS,
		MaxRuns:             0,
		MinBenchmarkingTime: DEFAULT_MIN_BENCHMARKING_TIME,
		FailOnError:         true,
		Style:               StyleFull,
	}
}

// SetRuns fixes the number of timed runs to exactly n.
func (o *Options) SetRuns(n int) {
	o.MinRuns = n
	o.MaxRuns = n
}

// Validate checks the options for a benchmark of commandCount commands.
func (o Options) Validate(commandCount int) error {
	if o.Warmup < 0 {
		return fmt.Errorf("%w: the number of warmup runs cannot be negative", ErrInvalidOptions)
	}
	if o.MinRuns < 1 {
		return fmt.Errorf("%w: at least one timed run is required", ErrInvalidOptions)
	}
	if o.MaxRuns != 0 && o.MaxRuns < o.MinRuns {
		return fmt.Errorf("%w: the maximum number of runs (%d) is smaller than the minimum (%d)", ErrInvalidOptions, o.MaxRuns, o.MinRuns)
	}
	if o.MinBenchmarkingTime < 0 {
		return fmt.Errorf("%w: the minimum benchmarking time cannot be negative", ErrInvalidOptions)
	}
	if len(o.Prepare) > 1 && len(o.Prepare) != commandCount {
		return fmt.Errorf("%w: got %d preparation commands for %d commands", ErrPrepareCountMismatch, len(o.Prepare), commandCount)
	}
	return nil
}

// prepareFor returns the preparation command of the command at index, if any.
func (o Options) prepareFor(index int) string {
	switch len(o.Prepare) {
	case 0:
		return ""
	case 1:
		return o.Prepare[0]
	default:
		return o.Prepare[index]
	}
}

// upperRuns is the largest number of timed runs: MaxRuns, or MAX_AUTO_RUNS (at
// least MinRuns) when no maximum is configured.
func (o Options) upperRuns() int {
	if o.MaxRuns == 0 {
		return max(MAX_AUTO_RUNS, o.MinRuns)
	}
	return o.MaxRuns
}

// timeTolerance absorbs float accumulation error when summing recorded times.
const timeTolerance = 1e-9

// satisfied reports whether runs timed runs, recording total seconds, are enough.
func (o Options) satisfied(runs int, total float64) bool {
	return runs >= o.MinRuns && total+timeTolerance >= o.MinBenchmarkingTime
}

// targetRuns estimates the number of timed runs for a command whose single run costs
// estimate seconds: enough runs to fill MinBenchmarkingTime, clamped to
// [MinRuns, upperRuns]. A zero estimate resolves to the upper bound. It only feeds
// the progress display, the runner stops on satisfied.
func (o Options) targetRuns(estimate float64) int {
	upper := o.upperRuns()
	if estimate <= 0 {
		return upper
	}

	needed := math.Ceil(o.MinBenchmarkingTime / estimate)
	if needed >= float64(upper) {
		return upper
	}
	return max(int(needed), o.MinRuns)
}

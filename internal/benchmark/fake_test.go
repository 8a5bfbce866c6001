package benchmark

import (
	"github.com/shravanasati/atomic/v2/internal/timer"
)

// fakeExecutor returns scripted samples instead of spawning processes.
type fakeExecutor struct {
	// scripts maps a command string to the sample of its n-th run (zero based).
	scripts map[string]func(n int) (timer.Sample, error)
	// onRun is called before every run.
	onRun  func(command string)
	calls  []string
	counts map[string]int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		scripts: make(map[string]func(n int) (timer.Sample, error)),
		counts:  make(map[string]int),
	}
}

// constant makes command always take wall seconds.
func (f *fakeExecutor) constant(command string, wall float64) *fakeExecutor {
	f.scripts[command] = func(int) (timer.Sample, error) {
		return timer.Sample{WallTime: wall, UserTime: wall / 2, SystemTime: wall / 4}, nil
	}
	return f
}

// exits makes command always exit with code.
func (f *fakeExecutor) exits(command string, code int) *fakeExecutor {
	f.scripts[command] = func(int) (timer.Sample, error) {
		return timer.Sample{WallTime: 0.01, Exit: timer.ExitStatus{Code: code}}, nil
	}
	return f
}

func (f *fakeExecutor) Run(command string) (timer.Sample, error) {
	if f.onRun != nil {
		f.onRun(command)
	}
	n := f.counts[command]
	f.counts[command]++
	f.calls = append(f.calls, command)

	if script, ok := f.scripts[command]; ok {
		return script(n)
	}
	return timer.Sample{WallTime: 0.001}, nil
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.Style = StyleDisabled
	return opts
}

// Package timer runs a single command and measures how long it took.
package timer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/shravanasati/atomic/v2/internal/shell"
)

var (
	// ErrSpawnFailed is returned when the process could not be created at all.
	ErrSpawnFailed = errors.New("unable to spawn process")
	// ErrInterrupted is returned when the process was terminated by a signal.
	ErrInterrupted = errors.New("process was terminated by a signal")
)

// ExitStatus is how a process ended.
type ExitStatus struct {
	Code int
}

// Success reports whether the process exited with status zero.
func (e ExitStatus) Success() bool {
	return e.Code == 0
}

// Sample is one executed run. All times are in seconds.
type Sample struct {
	WallTime   float64
	UserTime   float64
	SystemTime float64
	Exit       ExitStatus
}

// Executor runs a command string and times it. The benchmark engine only talks to
// processes through this interface.
type Executor interface {
	Run(command string) (Sample, error)
}

// ProcessTimer spawns commands through a shell and measures them.
type ProcessTimer struct {
	Shell shell.Shell
	// ShowOutput forwards the child's stdout and stderr, otherwise they are discarded.
	ShowOutput bool

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a ProcessTimer writing to the terminal when showOutput is set.
func New(sh shell.Shell, showOutput bool) *ProcessTimer {
	return &ProcessTimer{
		Shell:      sh,
		ShowOutput: showOutput,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Run executes command and returns its wall, user and system time. A non-zero
// exit status is not an error, it is reported in Sample.Exit.
func (p *ProcessTimer) Run(command string) (Sample, error) {
	argv, err := p.Shell.Command(command)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if p.ShowOutput {
		cmd.Stdout = p.Stdout
		cmd.Stderr = p.Stderr
	}

	init := time.Now()
	if err := cmd.Start(); err != nil {
		return Sample{}, fmt.Errorf("%w: `%s`: %w", ErrSpawnFailed, command, err)
	}
	err = cmd.Wait()
	duration := time.Since(init)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Sample{}, fmt.Errorf("waiting for `%s` failed: %w", command, err)
		}
	}

	ps := cmd.ProcessState
	// exit code is -1 when the process was killed by a signal
	if ps.ExitCode() == -1 {
		return Sample{}, fmt.Errorf("%w: `%s` (%s)", ErrInterrupted, command, ps.String())
	}

	return Sample{
		WallTime:   duration.Seconds(),
		UserTime:   ps.UserTime().Seconds(),
		SystemTime: ps.SystemTime().Seconds(),
		Exit:       ExitStatus{Code: ps.ExitCode()},
	}, nil
}

package benchmark

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions is returned for option values that can never work.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrPrepareCountMismatch is returned when the number of preparation commands is
	// neither one nor the number of benchmarked commands.
	ErrPrepareCountMismatch = errors.New("the prepare option has to be given just once or N times, where N is the number of benchmark commands")
	// ErrNoSamples is returned when a benchmark finished without a single timed run.
	ErrNoSamples = errors.New("no timed runs were recorded")
)

// CommandFailedError means a benchmarked command exited non-zero while failures
// were not ignored. Only that command's benchmark is aborted.
type CommandFailedError struct {
	Command  string
	ExitCode int
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command `%s` terminated with non-zero exit code %d, use the --ignore-error flag to ignore failures", e.Command, e.ExitCode)
}

// AuxiliaryFailedError means a setup, prepare or cleanup command exited non-zero.
type AuxiliaryFailedError struct {
	Phase    string
	Command  string
	ExitCode int
}

func (e *AuxiliaryFailedError) Error() string {
	return fmt.Sprintf("the %s command `%s` terminated with non-zero exit code %d", e.Phase, e.Command, e.ExitCode)
}

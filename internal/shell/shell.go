// Package shell describes the shell that benchmarked commands are spawned through.
package shell

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/google/shlex"
)

var (
	ErrEmptyShell   = errors.New("shell command is empty")
	ErrEmptyCommand = errors.New("command is empty")
)

// Shell is an executable plus the arguments that make it run a command string,
// e.g. `/bin/sh -c`. The zero value means no shell: commands are tokenized and
// executed directly.
type Shell struct {
	Executable string
	Args       []string
}

// Default returns the platform shell.
func Default() Shell {
	if runtime.GOOS == "windows" {
		return Shell{Executable: "cmd.exe", Args: []string{"/C"}}
	}
	return Shell{Executable: "/bin/sh", Args: []string{"-c"}}
}

// Parse reads a --shell value. An empty value selects the default shell, "none"
// disables the shell. Any other value is tokenized, and the flag that makes the
// shell run a string is appended unless already given.
func Parse(value string) (Shell, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "default":
		return Default(), nil
	case "none", "n":
		return Shell{}, nil
	}

	parts, err := shlex.Split(value)
	if err != nil {
		return Shell{}, fmt.Errorf("unable to parse shell `%s`: %w", value, err)
	}
	if len(parts) == 0 {
		return Shell{}, ErrEmptyShell
	}

	sh := Shell{Executable: parts[0], Args: parts[1:]}
	flag := runStringFlag(sh.Executable)
	if len(sh.Args) == 0 || !strings.EqualFold(sh.Args[len(sh.Args)-1], flag) {
		sh.Args = append(sh.Args, flag)
	}
	return sh, nil
}

// runStringFlag returns the flag which makes the given shell execute a string.
func runStringFlag(executable string) string {
	name := executable
	if idx := strings.LastIndexAny(name, `/\`); idx != -1 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	switch name {
	case "cmd":
		return "/C"
	case "pwsh", "powershell":
		return "-Command"
	default:
		return "-c"
	}
}

// Enabled reports whether commands go through a shell at all.
func (s Shell) Enabled() bool {
	return s.Executable != ""
}

// Command builds the argv used to run command.
func (s Shell) Command(command string) ([]string, error) {
	if !s.Enabled() {
		argv, err := shlex.Split(command)
		if err != nil {
			return nil, fmt.Errorf("unable to parse the given command `%s`: %w", command, err)
		}
		if len(argv) == 0 {
			return nil, ErrEmptyCommand
		}
		return argv, nil
	}

	argv := make([]string, 0, len(s.Args)+2)
	argv = append(argv, s.Executable)
	argv = append(argv, s.Args...)
	return append(argv, command), nil
}

func (s Shell) String() string {
	if !s.Enabled() {
		return "none"
	}
	return strings.Join(append([]string{s.Executable}, s.Args...), " ")
}

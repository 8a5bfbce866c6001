package timer

import (
	"bytes"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shravanasati/atomic/v2/internal/shell"
)

func posixOnly(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestProcessTimerSuccess(t *testing.T) {
	posixOnly(t)
	p := New(shell.Default(), false)

	sample, err := p.Run("true")
	require.NoError(t, err)
	assert.True(t, sample.Exit.Success())
	assert.Greater(t, sample.WallTime, 0.0)
	assert.GreaterOrEqual(t, sample.UserTime, 0.0)
	assert.GreaterOrEqual(t, sample.SystemTime, 0.0)
}

func TestProcessTimerNonZeroExit(t *testing.T) {
	posixOnly(t)
	p := New(shell.Default(), false)

	sample, err := p.Run("exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, sample.Exit.Code)
	assert.False(t, sample.Exit.Success())
}

func TestProcessTimerShowOutput(t *testing.T) {
	posixOnly(t)
	var stdout bytes.Buffer
	p := New(shell.Default(), true)
	p.Stdout = &stdout

	_, err := p.Run("echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestProcessTimerSpawnFailure(t *testing.T) {
	p := New(shell.Shell{Executable: "/definitely/not/a/shell", Args: []string{"-c"}}, false)

	_, err := p.Run("true")
	assert.True(t, errors.Is(err, ErrSpawnFailed), "got %v", err)
}

func TestProcessTimerSignal(t *testing.T) {
	posixOnly(t)
	p := New(shell.Default(), false)

	_, err := p.Run("kill -9 $$")
	assert.True(t, errors.Is(err, ErrInterrupted), "got %v", err)
}

func TestProcessTimerWithoutShell(t *testing.T) {
	posixOnly(t)
	p := New(shell.Shell{}, false)

	sample, err := p.Run("sh -c 'exit 2'")
	require.NoError(t, err)
	assert.Equal(t, 2, sample.Exit.Code)
}

package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(o *Options)
		commands int
		want     error
	}{
		{"defaults", func(o *Options) {}, 3, nil},
		{"one prepare", func(o *Options) { o.Prepare = []string{"p"} }, 3, nil},
		{"prepare per command", func(o *Options) { o.Prepare = []string{"p", "q", "r"} }, 3, nil},
		{"prepare mismatch", func(o *Options) { o.Prepare = []string{"p", "q"} }, 3, ErrPrepareCountMismatch},
		{"negative warmup", func(o *Options) { o.Warmup = -1 }, 1, ErrInvalidOptions},
		{"zero runs", func(o *Options) { o.SetRuns(0) }, 1, ErrInvalidOptions},
		{"max below min", func(o *Options) { o.MinRuns, o.MaxRuns = 5, 2 }, 1, ErrInvalidOptions},
		{"negative time", func(o *Options) { o.MinBenchmarkingTime = -1 }, 1, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate(tt.commands)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestParseOutputStyle(t *testing.T) {
	for _, s := range []string{"full", "basic", "nowarnings", "none"} {
		style, err := ParseOutputStyle(s)
		require.NoError(t, err)
		assert.Equal(t, s, style.String())
	}

	style, err := ParseOutputStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleFull, style)

	_, err = ParseOutputStyle("fancy")
	assert.Error(t, err)
}

func TestPrepareFor(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "", opts.prepareFor(2))

	opts.Prepare = []string{"only"}
	assert.Equal(t, "only", opts.prepareFor(2))

	opts.Prepare = []string{"a", "b", "c"}
	assert.Equal(t, "c", opts.prepareFor(2))
}

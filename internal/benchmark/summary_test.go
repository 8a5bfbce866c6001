package benchmark

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shravanasati/atomic/v2/internal"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevSummary, prevLog, prevColor := SummaryOutput, internal.Output, internal.NO_COLOR
	SummaryOutput, internal.Output, internal.NO_COLOR = &buf, &buf, true
	t.Cleanup(func() {
		SummaryOutput, internal.Output, internal.NO_COLOR = prevSummary, prevLog, prevColor
	})
	return &buf
}

func TestPrintComparison(t *testing.T) {
	buf := captureOutput(t)
	PrintComparison([]*Result{
		{Command: "slow", Mean: 2.0, StdDev: ptr(0.2)},
		{Command: "fast", Mean: 1.0, StdDev: ptr(0.1)},
	}, DefaultOptions())

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "'fast' ran")
	assert.Contains(t, out, "2.00 ± 0.28 times faster than 'slow'")
}

func TestPrintComparisonZeroMean(t *testing.T) {
	buf := captureOutput(t)
	PrintComparison([]*Result{{Command: "a", Mean: 0}, {Command: "b", Mean: 1}}, DefaultOptions())
	assert.Contains(t, buf.String(), "could not be computed")
}

func TestPrintComparisonDisabled(t *testing.T) {
	buf := captureOutput(t)
	opts := DefaultOptions()
	opts.Style = StyleDisabled
	PrintComparison([]*Result{{Command: "a", Mean: 2}, {Command: "b", Mean: 1}}, opts)
	assert.Empty(t, buf.String())
}

func TestPrintWarningsStyles(t *testing.T) {
	warnings := []Warning{{Kind: FastExecutionTime, Message: "too fast"}}

	buf := captureOutput(t)
	PrintWarnings(warnings, DefaultOptions())
	assert.Contains(t, buf.String(), "Warning: too fast")

	buf.Reset()
	opts := DefaultOptions()
	opts.Style = StyleNoWarnings
	PrintWarnings(warnings, opts)
	assert.Empty(t, buf.String())
}

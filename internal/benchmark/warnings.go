package benchmark

import (
	"fmt"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/stats"
)

const (
	// MIN_EXECUTION_TIME is the mean below which, in seconds, results are flagged as
	// unreliable: shell spawn calibration is not more precise than that.
	MIN_EXECUTION_TIME = 0.005
	// OUTLIER_WARNING_FRACTION is the share of excluded runs above which a warning
	// is shown.
	OUTLIER_WARNING_FRACTION = 0.0
)

// WarningKind identifies a warning.
type WarningKind int

const (
	NonZeroExitCode WarningKind = iota
	FastExecutionTime
	SlowInitialRun
	OutliersDetected
)

// Warning is advisory output about a result. It never changes the result.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Warnings inspects a finished result.
func Warnings(result *Result, opts Options) []Warning {
	var warnings []Warning

	for _, code := range result.ExitCodes {
		if code != 0 {
			warnings = append(warnings, Warning{
				Kind:    NonZeroExitCode,
				Message: "Ignoring non-zero exit code.",
			})
			break
		}
	}

	if result.Mean < MIN_EXECUTION_TIME {
		warnings = append(warnings, Warning{
			Kind: FastExecutionTime,
			Message: "Command took less than 5 ms to complete. Note that the results might be " +
				"inaccurate because atomic can not calibrate the shell startup time much more " +
				"precise than this limit. You can try to use the `--shell=none` option to " +
				"disable the shell completely.",
		})
	}

	scores := stats.ModifiedZScores(result.Times)
	if len(result.Times) >= stats.MIN_OUTLIER_SAMPLES && scores[0] > stats.OUTLIER_THRESHOLD {
		warnings = append(warnings, Warning{
			Kind: SlowInitialRun,
			Message: fmt.Sprintf("The first benchmarking run for this command was significantly "+
				"slower than the rest (%s). This could be caused by (filesystem) caches that were "+
				"not filled until after the first run. %s Alternatively, use the `--prepare` option "+
				"to clear the caches before each timing run.",
				internal.FormatTime(result.Times[0], opts.TimeUnit), warmupHint(opts)),
		})
	} else if outliers := result.OutlierCount(); float64(outliers)/float64(len(result.Times)) > OUTLIER_WARNING_FRACTION {
		warnings = append(warnings, Warning{
			Kind: OutliersDetected,
			Message: fmt.Sprintf("Statistical outliers were detected (%d of %d runs) and excluded "+
				"from the mean. Consider re-running this benchmark on a quiet system, devoid of "+
				"any interferences from other programs. %s", outliers, len(result.Times), warmupHint(opts)),
		})
	}

	return warnings
}

func warmupHint(opts Options) string {
	if opts.Warmup == 0 {
		return "It might help to use the `--warmup` flag."
	}
	return "Since you're already using the `--warmup` flag, you can consider increasing the warmup count."
}

package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressWriter is where progress bars render. It is stderr so that stdout stays
// clean for the summary.
var ProgressWriter io.Writer = os.Stderr

// tag returns the color code tag understood by progressbar, or nothing without colors.
func tag(name string) string {
	if NO_COLOR {
		return ""
	}
	return "[" + name + "]"
}

// NewProgressBar returns a bar with atomic's theme. A negative max renders a spinner
// until ChangeMax is called.
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	pbarOptions := []progressbar.Option{
		progressbar.OptionSetWriter(ProgressWriter),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(tag("magenta") + description + tag("reset")),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        tag("green") + "=" + tag("reset"),
			SaucerHead:    tag("green") + ">" + tag("reset"),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionEnableColorCodes(!NO_COLOR),
	}
	return progressbar.NewOptions(max, pbarOptions...)
}

// DescribeEstimate updates the bar description with the current mean estimate.
func DescribeEstimate(bar *progressbar.ProgressBar, estimate string) {
	bar.Describe(fmt.Sprintf("%sCurrent estimate:%s %s%s%s",
		tag("magenta"), tag("reset"), tag("green"), estimate, tag("reset")))
}

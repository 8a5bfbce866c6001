package benchmark

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/command"
)

// SummaryOutput is where benchmark summaries are printed.
var SummaryOutput io.Writer = os.Stdout

var summaryTemplate = `${bold}Benchmark {{ .Index }}:${reset} {{ .Command }}
{{- if .StdDev }}
  Time (${green}mean${reset} ± ${green}σ${reset}):     ${green}${bold}{{ .Mean }}${reset} ± ${green}{{ .StdDev }}${reset}    [User: ${blue}{{ .User }}${reset}, System: ${blue}{{ .System }}${reset}]
  Range (${cyan}min${reset} … ${purple}max${reset}):   ${cyan}{{ .Min }}${reset} … ${purple}{{ .Max }}${reset}    {{ .Runs }} runs
{{- else }}
  Time (${green}abs${reset} ≡):        ${green}${bold}{{ .Mean }}${reset}    [User: ${blue}{{ .User }}${reset}, System: ${blue}{{ .System }}${reset}]
{{- end }}
{{- if .Outliers }}
  Outliers:            ${yellow}{{ .Outliers }} of {{ .Runs }} runs excluded from the mean${reset}
{{- end }}

`

type summaryView struct {
	Index    int
	Command  string
	Mean     string
	StdDev   string
	User     string
	System   string
	Min      string
	Max      string
	Runs     int
	Outliers int
}

func colorParams() map[string]string {
	return map[string]string{
		"bold":   internal.ColorCode("bold"),
		"green":  internal.ColorCode("green"),
		"blue":   internal.ColorCode("blue"),
		"cyan":   internal.ColorCode("cyan"),
		"purple": internal.ColorCode("magenta"),
		"yellow": internal.ColorCode("yellow"),
		"reset":  internal.ColorCode("reset"),
	}
}

// PrintHeader announces the benchmark of the index-th command (zero based).
func PrintHeader(index int, cmd command.Command, opts Options) {
	if opts.Style == StyleDisabled || !opts.ShowOutput {
		return
	}
	internal.Log("bold", fmt.Sprintf("Benchmark %d: %s", index+1, cmd.Name))
}

// PrintResult prints the summary of one finished benchmark.
func PrintResult(index int, result *Result, opts Options) {
	if opts.Style == StyleDisabled {
		return
	}
	unit := opts.TimeUnit
	if unit == 0 {
		unit = internal.AutoTimeUnit(result.Mean)
	}

	view := summaryView{
		Index:    index + 1,
		Command:  result.Command,
		Mean:     internal.FormatTime(result.Mean, unit),
		User:     internal.FormatTime(result.UserMean, unit),
		System:   internal.FormatTime(result.SystemMean, unit),
		Min:      internal.FormatTime(result.Min, unit),
		Max:      internal.FormatTime(result.Max, unit),
		Runs:     result.Runs(),
		Outliers: result.OutlierCount(),
	}
	if result.StdDev != nil {
		view.StdDev = internal.FormatTime(*result.StdDev, unit)
	}

	// * parsing the template
	tmpl, err := template.New("result").Parse(internal.Format(summaryTemplate, colorParams()))
	if err != nil {
		panic(err)
	}
	if err := tmpl.Execute(SummaryOutput, view); err != nil {
		panic(err)
	}
}

// PrintWarnings prints the warnings of a result unless the style hides them.
func PrintWarnings(warnings []Warning, opts Options) {
	if opts.Style == StyleNoWarnings || opts.Style == StyleDisabled {
		return
	}
	for _, w := range warnings {
		internal.Log("yellow", "  Warning: "+w.Message)
	}
	if len(warnings) > 0 {
		fmt.Fprintln(SummaryOutput)
	}
}

// PrintComparison prints how much faster the fastest command was than the others,
// or a note when no comparison can be computed.
func PrintComparison(results []*Result, opts Options) {
	if opts.Style == StyleDisabled || len(results) < 2 {
		return
	}

	annotated, ok := ComputeRelativeSpeed(results)
	if !ok {
		internal.Log("red", "Note: The benchmark comparison could not be computed as some benchmark times are zero. "+
			"This could be caused by background interference during the initial calibration phase "+
			"of atomic, in combination with very fast commands (faster than a few milliseconds). "+
			"Try to re-run the benchmark on a quiet system. If it does not help, your command is "+
			"most likely too fast to be accurately benchmarked by atomic.")
		return
	}
	SortByMean(annotated)

	var sb strings.Builder
	c := colorParams()
	fmt.Fprintf(&sb, "%sSummary%s\n", c["bold"], c["reset"])
	fmt.Fprintf(&sb, "  '%s%s%s' ran\n", c["cyan"], annotated[0].Result.Command, c["reset"])
	for _, item := range annotated[1:] {
		stddev := ""
		if item.RelativeSpeedStdDev != nil {
			stddev = fmt.Sprintf(" ± %s%.2f%s", c["green"], *item.RelativeSpeedStdDev, c["reset"])
		}
		fmt.Fprintf(&sb, "%s%s%8.2f%s%s times faster than '%s%s%s'\n",
			c["bold"], c["green"], item.RelativeSpeed, c["reset"], stddev,
			c["purple"], item.Result.Command, c["reset"])
	}
	fmt.Fprint(SummaryOutput, sb.String())
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/benchmark"
	"github.com/shravanasati/atomic/v2/internal/sysinfo"
)

// document is the layout of JSON and YAML exports.
type document struct {
	Results []*benchmark.Result `json:"results" yaml:"results"`
	Host    *sysinfo.Host       `json:"host,omitempty" yaml:"host,omitempty"`
}

func newDocument(results []*benchmark.Result, host *sysinfo.Host) document {
	if results == nil {
		results = []*benchmark.Result{}
	}
	return document{Results: results, Host: host}
}

// jsonify converts the results to JSON.
func jsonify(results []*benchmark.Result, host *sysinfo.Host) (string, error) {
	text, err := json.MarshalIndent(newDocument(results, host), "", "    ")
	if err != nil {
		return "", err
	}
	return string(text) + "\n", nil
}

// yamlify converts the results to YAML.
func yamlify(results []*benchmark.Result, host *sysinfo.Host) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(results, host)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parameterNames returns the names of all parameters of the results, sorted.
func parameterNames(results []*benchmark.Result) []string {
	var names []string
	for _, r := range results {
		for name := range r.Parameters {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

func seconds(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// csvify converts the results to CSV, times in seconds, one row per command.
func csvify(results []*benchmark.Result) (string, error) {
	params := parameterNames(results)
	header := []string{"command", "mean", "stddev", "median", "user", "system", "min", "max"}
	for _, p := range params {
		header = append(header, "parameter_"+p)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, r := range results {
		stddev := ""
		if r.StdDev != nil {
			stddev = seconds(*r.StdDev)
		}
		row := []string{
			r.Command, seconds(r.Mean), stddev, seconds(r.Median),
			seconds(r.UserMean), seconds(r.SystemMean), seconds(r.Min), seconds(r.Max),
		}
		for _, p := range params {
			row = append(row, r.Parameters[p])
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// tableRow is a result as shown in the Markdown and AsciiDoc tables.
type tableRow struct {
	Command  string
	Mean     string
	Min      string
	Max      string
	Relative string
}

// tableRows formats the results in unit. The relative column is empty when the
// comparison can't be computed.
func tableRows(results []*benchmark.Result, unit time.Duration) ([]tableRow, bool) {
	annotated, ok := benchmark.ComputeRelativeSpeed(results)
	rows := make([]tableRow, len(results))
	for i, r := range results {
		mean := internal.FormatNumber(r.Mean, unit)
		if r.StdDev != nil {
			mean += " ± " + internal.FormatNumber(*r.StdDev, unit)
		}
		rows[i] = tableRow{
			Command: r.Command,
			Mean:    mean,
			Min:     internal.FormatNumber(r.Min, unit),
			Max:     internal.FormatNumber(r.Max, unit),
		}
		if ok {
			rows[i].Relative = fmt.Sprintf("%.2f", annotated[i].RelativeSpeed)
			if sd := annotated[i].RelativeSpeedStdDev; sd != nil && !annotated[i].IsFastest {
				rows[i].Relative += fmt.Sprintf(" ± %.2f", *sd)
			}
		}
	}
	return rows, ok
}

func markdownify(results []*benchmark.Result, unit time.Duration) string {
	rows, relative := tableRows(results, unit)
	suffix := internal.UnitSuffix(unit)

	var sb strings.Builder
	fmt.Fprintf(&sb, "| Command | Mean [%[1]s] | Min [%[1]s] | Max [%[1]s] |", suffix)
	if relative {
		sb.WriteString(" Relative |")
	}
	sb.WriteString("\n|:---|---:|---:|---:|")
	if relative {
		sb.WriteString("---:|")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		command := strings.ReplaceAll(row.Command, "|", "\\|")
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |", command, row.Mean, row.Min, row.Max)
		if relative {
			fmt.Fprintf(&sb, " %s |", row.Relative)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func asciidocify(results []*benchmark.Result, unit time.Duration) string {
	rows, relative := tableRows(results, unit)
	suffix := internal.UnitSuffix(unit)

	var sb strings.Builder
	if relative {
		sb.WriteString("[cols=\"<,>,>,>,>\"]\n")
	} else {
		sb.WriteString("[cols=\"<,>,>,>\"]\n")
	}
	sb.WriteString("|===\n")
	fmt.Fprintf(&sb, "| Command\n| Mean [%[1]s]\n| Min [%[1]s]\n| Max [%[1]s]\n", suffix)
	if relative {
		sb.WriteString("| Relative\n")
	}

	for _, row := range rows {
		command := strings.ReplaceAll(row.Command, "|", "\\|")
		fmt.Fprintf(&sb, "\n| `%s`\n| %s\n| %s\n| %s\n", command, row.Mean, row.Min, row.Max)
		if relative {
			fmt.Fprintf(&sb, "| %s\n", row.Relative)
		}
	}
	sb.WriteString("|===\n")
	return sb.String()
}

var summaryText = `{{ range . }}Benchmark {{ .Index }}: {{ .Command }}
--------------------------------------------
Total runs:          {{ .Runs }}
Mean time taken:     {{ .Mean }}{{ if .StdDev }} ± {{ .StdDev }}{{ end }}
Median time taken:   {{ .Median }}
User time:           {{ .User }}
System time:         {{ .System }}
Range (min … max):   {{ .Min }} … {{ .Max }}
Outliers excluded:   {{ .Outliers }}
{{- range $name, $value := .Parameters }}
Parameter {{ $name }}:   {{ $value }}
{{- end }}
{{- if .Relative }}
Relative speed:      {{ .Relative }}
{{- end }}

{{ end }}`

type textView struct {
	Index      int
	Command    string
	Runs       int
	Mean       string
	StdDev     string
	Median     string
	User       string
	System     string
	Min        string
	Max        string
	Outliers   int
	Parameters map[string]string
	Relative   string
}

// textify renders a plain text summary of every result. A zero unit picks one per
// result.
func textify(results []*benchmark.Result, unit time.Duration) (string, error) {
	annotated, ok := benchmark.ComputeRelativeSpeed(results)

	views := make([]textView, len(results))
	for i, r := range results {
		u := unit
		if u == 0 {
			u = internal.AutoTimeUnit(r.Mean)
		}
		views[i] = textView{
			Index:      i + 1,
			Command:    r.Command,
			Runs:       r.Runs(),
			Mean:       internal.FormatTime(r.Mean, u),
			Median:     internal.FormatTime(r.Median, u),
			User:       internal.FormatTime(r.UserMean, u),
			System:     internal.FormatTime(r.SystemMean, u),
			Min:        internal.FormatTime(r.Min, u),
			Max:        internal.FormatTime(r.Max, u),
			Outliers:   r.OutlierCount(),
			Parameters: r.Parameters,
		}
		if r.StdDev != nil {
			views[i].StdDev = internal.FormatTime(*r.StdDev, u)
		}
		if ok && len(results) > 1 {
			views[i].Relative = fmt.Sprintf("%.2fx", annotated[i].RelativeSpeed)
		}
	}

	tmpl, err := template.New("summary").Parse(summaryText)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, views); err != nil {
		return "", err
	}
	return buf.String(), nil
}

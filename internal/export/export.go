// Package export writes benchmark results to files: JSON, CSV, Markdown, AsciiDoc,
// YAML and plain text summaries, plus gonum plots of the measured times.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/benchmark"
	"github.com/shravanasati/atomic/v2/internal/sysinfo"
)

// DEFAULT_OUTFILE is the base name of exported files when none is configured.
const DEFAULT_OUTFILE = "atomic-summary"

var ErrInvalidFormat = errors.New("invalid export format")

// Format is an export file format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	AsciiDoc Format = "asciidoc"
	YAML     Format = "yaml"
	Text     Format = "text"
)

var allFormats = []Format{JSON, CSV, Markdown, AsciiDoc, YAML, Text}

var extensions = map[Format]string{
	JSON:     "json",
	CSV:      "csv",
	Markdown: "md",
	AsciiDoc: "adoc",
	YAML:     "yaml",
	Text:     "txt",
}

// ParseFormats reads a comma separated --export value. "none" or an empty string
// yields no formats, "all" every one of them. Duplicates are dropped.
func ParseFormats(formats string) ([]Format, error) {
	var parsed []Format
	for _, f := range strings.Split(strings.ToLower(formats), ",") {
		f = strings.TrimSpace(f)
		switch f {
		case "", "none":
			continue
		case "all":
			return slices.Clone(allFormats), nil
		case "md":
			f = string(Markdown)
		case "adoc":
			f = string(AsciiDoc)
		case "yml":
			f = string(YAML)
		case "txt":
			f = string(Text)
		}
		format := Format(f)
		if _, ok := extensions[format]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, f)
		}
		if !slices.Contains(parsed, format) {
			parsed = append(parsed, format)
		}
	}
	return parsed, nil
}

// Manager writes the configured exports. It is a benchmark.ResultSink: the files are
// rewritten after every command, so a cancelled run still leaves the results so far.
type Manager struct {
	Formats []Format
	// Outfile is the base name of the exported files, extensions are added.
	Outfile string
	// PlotFormats are plot kinds, see ParsePlotFormats.
	PlotFormats []string
	// PlotDir is where plots are saved.
	PlotDir string
	// TimeUnit for tables and plots, 0 picks one from the results.
	TimeUnit time.Duration
	// Host, if set, is embedded in JSON and YAML exports.
	Host *sysinfo.Host
}

// Write rewrites every export with the results so far.
func (m *Manager) Write(results []*benchmark.Result) error {
	_, err := m.writeAll(results)
	return err
}

// Finish writes every export and plot for the final results and reports the written
// files.
func (m *Manager) Finish(results []*benchmark.Result) error {
	written, err := m.writeAll(results)
	if err != nil {
		return err
	}
	if len(results) > 0 && len(m.PlotFormats) > 0 {
		plots, err := Plot(m.PlotFormats, results, m.timeUnit(results), m.plotDir())
		if err != nil {
			return err
		}
		written = append(written, plots...)
	}

	for _, filename := range written {
		absPath, err := filepath.Abs(filename)
		if err != nil {
			absPath = filename
		}
		internal.Log("green", "Successfully wrote benchmark summary to `"+absPath+"`.")
	}
	return nil
}

// Filename returns the file a format is written to.
func (m *Manager) Filename(format Format) string {
	outfile := m.Outfile
	if strings.TrimSpace(outfile) == "" {
		outfile = DEFAULT_OUTFILE
	}
	return internal.AddExtension(outfile, extensions[format])
}

func (m *Manager) writeAll(results []*benchmark.Result) ([]string, error) {
	var written []string
	for _, format := range m.Formats {
		text, err := m.Render(format, results)
		if err != nil {
			return written, fmt.Errorf("failed to export the results to %s: %w", format, err)
		}
		filename := m.Filename(format)
		if err := internal.WriteToFile(text, filename); err != nil {
			return written, fmt.Errorf("failed to write `%s`: %w", filename, err)
		}
		written = append(written, filename)
	}
	return written, nil
}

// Render returns the results in the given format.
func (m *Manager) Render(format Format, results []*benchmark.Result) (string, error) {
	unit := m.timeUnit(results)
	switch format {
	case JSON:
		return jsonify(results, m.Host)
	case CSV:
		return csvify(results)
	case Markdown:
		return markdownify(results, unit), nil
	case AsciiDoc:
		return asciidocify(results, unit), nil
	case YAML:
		return yamlify(results, m.Host)
	case Text:
		return textify(results, m.TimeUnit)
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
}

// timeUnit is the configured unit, or one that suits the first result.
func (m *Manager) timeUnit(results []*benchmark.Result) time.Duration {
	if m.TimeUnit != 0 {
		return m.TimeUnit
	}
	if len(results) == 0 {
		return time.Millisecond
	}
	return internal.AutoTimeUnit(results[0].Mean)
}

func (m *Manager) plotDir() string {
	if m.PlotDir == "" {
		return "."
	}
	return m.PlotDir
}

// Package config holds everything a benchmark run is configured with. Values come
// from an optional YAML benchmark file, overridden by command line flags.
//
// A benchmark file looks like:
//
//	commands:
//	  - "sort -n {file}"
//	  - "sort -g {file}"
//	names: ["numeric", "general"]
//	parameter_lists:
//	  - name: file
//	    values: [small.txt, large.txt]
//	warmup: 3
//	prepare: ["sync"]
//	export: "json,markdown"
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/benchmark"
	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/export"
	"github.com/shravanasati/atomic/v2/internal/shell"
)

// Config is a complete benchmark configuration.
type Config struct {
	// Commands are the command expressions to benchmark.
	Commands []string `koanf:"commands" yaml:"commands"`
	// Names are display names for Commands, by position.
	Names []string       `koanf:"names" yaml:"names"`
	Scans []command.Scan `koanf:"parameter_scans" yaml:"parameter_scans"`
	Lists []command.List `koanf:"parameter_lists" yaml:"parameter_lists"`

	// Prepare is empty, a single command, or one command per expanded command.
	Prepare []string `koanf:"prepare" yaml:"prepare"`
	Setup   string   `koanf:"setup" yaml:"setup"`
	Cleanup string   `koanf:"cleanup" yaml:"cleanup"`

	// Runs, if positive, fixes the number of timed runs and overrides MinRuns and MaxRuns.
	Runs    int `koanf:"runs" yaml:"runs"`
	Warmup  int `koanf:"warmup" yaml:"warmup"`
	MinRuns int `koanf:"min_runs" yaml:"min_runs"`
	MaxRuns int `koanf:"max_runs" yaml:"max_runs"`
	// MinTime is the minimum benchmarking time per command, in seconds.
	MinTime float64 `koanf:"min_time" yaml:"min_time"`

	IgnoreError bool   `koanf:"ignore_error" yaml:"ignore_error"`
	ShowOutput  bool   `koanf:"show_output" yaml:"show_output"`
	Shell       string `koanf:"shell" yaml:"shell"`
	Style       string `koanf:"style" yaml:"style"`
	TimeUnit    string `koanf:"time_unit" yaml:"time_unit"`

	// Export is a comma separated list of export formats.
	Export  string `koanf:"export" yaml:"export"`
	Outfile string `koanf:"outfile" yaml:"outfile"`
	// Plot is a comma separated list of plot kinds.
	Plot string `koanf:"plot" yaml:"plot"`
}

var (
	ErrNoCommands    = errors.New("no commands to benchmark")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Default returns the configuration used without a benchmark file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML benchmark file. Commands may still be missing, see Validate.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MinRuns == 0 {
		c.MinRuns = benchmark.DEFAULT_MIN_RUNS
	}
	if c.MinTime == 0 {
		c.MinTime = benchmark.DEFAULT_MIN_BENCHMARKING_TIME
	}
	if c.Shell == "" {
		c.Shell = "default"
	}
	if c.Style == "" {
		c.Style = benchmark.StyleFull.String()
	}
	if c.Export == "" {
		c.Export = "none"
	}
	if c.Outfile == "" {
		c.Outfile = export.DEFAULT_OUTFILE
	}
	if c.Plot == "" {
		c.Plot = "none"
	}
}

func (c *Config) validate() error {
	if c.Runs < 0 {
		return fmt.Errorf("%w: runs cannot be negative", ErrInvalidConfig)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: warmup cannot be negative", ErrInvalidConfig)
	}
	if c.MinRuns < 0 || c.MaxRuns < 0 {
		return fmt.Errorf("%w: min_runs and max_runs cannot be negative", ErrInvalidConfig)
	}
	if c.Runs == 0 && c.MaxRuns != 0 && c.MaxRuns < c.MinRuns {
		return fmt.Errorf("%w: max_runs (%d) is smaller than min_runs (%d)", ErrInvalidConfig, c.MaxRuns, c.MinRuns)
	}
	if c.MinTime < 0 {
		return fmt.Errorf("%w: min_time cannot be negative", ErrInvalidConfig)
	}
	if _, err := benchmark.ParseOutputStyle(c.Style); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.timeUnit(); err != nil {
		return err
	}
	if _, err := shell.Parse(c.Shell); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := export.ParseFormats(c.Export); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := export.ParsePlotFormats(c.Plot); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks a configuration that is about to be run.
func (c *Config) Validate() error {
	if len(c.Commands) == 0 {
		return ErrNoCommands
	}
	return c.validate()
}

// Override replaces every value of c with the corresponding value of o that is set,
// i.e. not the zero value.
func (c *Config) Override(o *Config) {
	if len(o.Commands) > 0 {
		c.Commands = o.Commands
	}
	if len(o.Names) > 0 {
		c.Names = o.Names
	}
	if len(o.Scans) > 0 {
		c.Scans = o.Scans
	}
	if len(o.Lists) > 0 {
		c.Lists = o.Lists
	}
	if len(o.Prepare) > 0 {
		c.Prepare = o.Prepare
	}
	overrideString(&c.Setup, o.Setup)
	overrideString(&c.Cleanup, o.Cleanup)
	overrideInt(&c.Runs, o.Runs)
	overrideInt(&c.Warmup, o.Warmup)
	overrideInt(&c.MinRuns, o.MinRuns)
	overrideInt(&c.MaxRuns, o.MaxRuns)
	if o.MinTime != 0 {
		c.MinTime = o.MinTime
	}
	c.IgnoreError = c.IgnoreError || o.IgnoreError
	c.ShowOutput = c.ShowOutput || o.ShowOutput
	overrideString(&c.Shell, o.Shell)
	overrideString(&c.Style, o.Style)
	overrideString(&c.TimeUnit, o.TimeUnit)
	overrideString(&c.Export, o.Export)
	overrideString(&c.Outfile, o.Outfile)
	overrideString(&c.Plot, o.Plot)
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func overrideInt(dst *int, value int) {
	if value != 0 {
		*dst = value
	}
}

func (c *Config) timeUnit() (time.Duration, error) {
	if c.TimeUnit == "" {
		return 0, nil
	}
	unit, err := internal.ParseTimeUnit(c.TimeUnit)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %s", ErrInvalidConfig, err, c.TimeUnit)
	}
	return unit, nil
}

// BenchmarkOptions converts the configuration into benchmark options.
func (c *Config) BenchmarkOptions() (benchmark.Options, error) {
	opts := benchmark.DefaultOptions()
	opts.Warmup = c.Warmup
	opts.MinRuns = c.MinRuns
	opts.MaxRuns = c.MaxRuns
	if c.Runs > 0 {
		opts.SetRuns(c.Runs)
	}
	opts.MinBenchmarkingTime = c.MinTime
	opts.FailOnError = !c.IgnoreError
	opts.ShowOutput = c.ShowOutput
	opts.Prepare = c.Prepare
	opts.Setup = c.Setup
	opts.Cleanup = c.Cleanup

	style, err := benchmark.ParseOutputStyle(c.Style)
	if err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	opts.Style = style

	if opts.TimeUnit, err = c.timeUnit(); err != nil {
		return opts, err
	}
	return opts, nil
}

// BuildCommands expands the command expressions over the configured parameters.
func (c *Config) BuildCommands() ([]command.Command, error) {
	if len(c.Commands) == 0 {
		return nil, ErrNoCommands
	}
	return command.Build(c.Commands, c.Names, c.Scans, c.Lists)
}

// ParseShell returns the configured shell.
func (c *Config) ParseShell() (shell.Shell, error) {
	return shell.Parse(c.Shell)
}

// ExportManager returns the export manager for the configured formats and plots.
func (c *Config) ExportManager() (*export.Manager, error) {
	formats, err := export.ParseFormats(c.Export)
	if err != nil {
		return nil, err
	}
	plots, err := export.ParsePlotFormats(c.Plot)
	if err != nil {
		return nil, err
	}
	unit, err := c.timeUnit()
	if err != nil {
		return nil, err
	}
	return &export.Manager{
		Formats:     formats,
		Outfile:     c.Outfile,
		PlotFormats: plots,
		TimeUnit:    unit,
	}, nil
}

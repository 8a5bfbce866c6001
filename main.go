package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/shravanasati/commando"
	"golang.org/x/term"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/benchmark"
	"github.com/shravanasati/atomic/v2/internal/command"
	"github.com/shravanasati/atomic/v2/internal/config"
	"github.com/shravanasati/atomic/v2/internal/sysinfo"
)

const (
	// NAME is the executable name.
	NAME = "atomic"
	// VERSION is the executable version.
	VERSION = "v0.5.0"
)

// commandsHelp describes the positional commands. The list is split on commas, so a
// command that itself contains a comma has to be given in a --config file.
const commandsHelp = "The commands to benchmark, comma separated. Commands containing a comma must be listed in a --config file instead."

// splitList splits a comma separated flag value, dropping empty items.
func splitList(value string) []string {
	return internal.FilterFunc(func(s string) bool { return strings.TrimSpace(s) != "" }, strings.Split(value, ","))
}

// configFromFlags collects the explicitly given flags, everything else stays unset.
func configFromFlags(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) (*config.Config, error) {
	cfg := &config.Config{
		Commands: splitList(args["commands"].Value),
		Names:    splitList(mustString(flags, "command-name")),
		Setup:    mustString(flags, "setup"),
		Cleanup:  mustString(flags, "cleanup"),
		Shell:    mustString(flags, "shell"),
		Style:    mustString(flags, "style"),
		TimeUnit: mustString(flags, "time-unit"),
		Export:   mustString(flags, "export"),
		Outfile:  mustString(flags, "outfile"),
		Plot:     mustString(flags, "plot"),
	}
	if prepare := mustString(flags, "prepare"); prepare != "" {
		cfg.Prepare = []string{prepare}
	}

	var err error
	intFlags := map[string]*int{
		"runs":     &cfg.Runs,
		"warmup":   &cfg.Warmup,
		"min-runs": &cfg.MinRuns,
		"max-runs": &cfg.MaxRuns,
	}
	for name, dst := range intFlags {
		if *dst, err = flags[name].GetInt(); err != nil {
			return nil, fmt.Errorf("the value of --%s must be an integer: %w", name, err)
		}
	}

	if minTime := mustString(flags, "min-time"); minTime != "" {
		if cfg.MinTime, err = strconv.ParseFloat(minTime, 64); err != nil {
			return nil, fmt.Errorf("the value of --min-time must be a number of seconds: %w", err)
		}
	}

	if cfg.IgnoreError, err = flags["ignore-error"].GetBool(); err != nil {
		return nil, fmt.Errorf("cannot parse flag values: %w", err)
	}
	if cfg.ShowOutput, err = flags["show-output"].GetBool(); err != nil {
		return nil, fmt.Errorf("cannot parse flag values: %w", err)
	}

	if scan := mustString(flags, "parameter-scan"); scan != "" {
		s, err := command.ParseScan(scan)
		if err != nil {
			return nil, err
		}
		cfg.Scans = []command.Scan{s}
	}
	if list := mustString(flags, "parameter-list"); list != "" {
		l, err := command.ParseList(list)
		if err != nil {
			return nil, err
		}
		cfg.Lists = []command.List{l}
	}
	return cfg, nil
}

// mustString returns a string flag value. Only used for flags registered as
// commando.String, whose values always parse.
func mustString(flags map[string]commando.FlagValue, name string) string {
	value, err := flags[name].GetString()
	if err != nil {
		panic("cannot read flag " + name + ": " + err.Error())
	}
	return strings.TrimSpace(value)
}

func run(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) error {
	color, err := flags["color"].GetBool()
	if err != nil {
		return fmt.Errorf("cannot parse flag values: %w", err)
	}
	stdoutIsTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	internal.NO_COLOR = !color || !stdoutIsTerminal

	cliConfig, err := configFromFlags(args, flags)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if path := mustString(flags, "config"); path != "" {
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	} else if cliConfig.Style == "" && !stdoutIsTerminal {
		cliConfig.Style = benchmark.StyleBasic.String()
	}
	cfg.Override(cliConfig)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := cfg.BenchmarkOptions()
	if err != nil {
		return err
	}
	commands, err := cfg.BuildCommands()
	if err != nil {
		return err
	}
	sh, err := cfg.ParseShell()
	if err != nil {
		return err
	}
	manager, err := cfg.ExportManager()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(manager.Formats) > 0 {
		if host, err := sysinfo.Collect(ctx); err == nil {
			manager.Host = host
		}
	}

	scheduler := &benchmark.Scheduler{
		Options: opts,
		Shell:   sh,
		Sink:    manager,
	}
	_, err = scheduler.Run(ctx, commands)
	return err
}

func main() {
	// * basic configuration
	commando.
		SetExecutableName(NAME).
		SetVersion(VERSION).
		SetDescription("atomic is a simple CLI tool to make benchmarking easy. \nFor more info visit https://github.com/shravanasati/atomic.")

	// * root command
	commando.
		Register(nil).
		SetShortDescription("Benchmark one or more commands.").
		SetDescription("Benchmark one or more commands, comparing them against the fastest.").
		AddArgument("commands...", commandsHelp, "").
		AddFlag("runs,r", "Perform exactly this many timed runs per command.", commando.Int, 0).
		AddFlag("warmup,w", "The number of warmup runs to perform before measuring.", commando.Int, 0).
		AddFlag("min-runs,m", "The minimum number of timed runs (default 10).", commando.Int, 0).
		AddFlag("max-runs,M", "The maximum number of timed runs, unlimited by default.", commando.Int, 0).
		AddFlag("min-time", "The minimum time, in seconds, to spend benchmarking each command (default 3).", commando.String, "").
		AddFlag("ignore-error,I", "Ignore if the process returns a non-zero return code.", commando.Bool, false).
		AddFlag("show-output", "Print the output of the benchmarked commands.", commando.Bool, false).
		AddFlag("shell,S", "The shell to run commands with, or 'none' to run them directly.", commando.String, "").
		AddFlag("prepare,p", "A command to run before every timed run, e.g. to clear caches.", commando.String, "").
		AddFlag("setup,s", "A command to run once before benchmarking each command.", commando.String, "").
		AddFlag("cleanup,c", "A command to run once after benchmarking each command.", commando.String, "").
		AddFlag("style", "The output style: full, basic, nowarnings or none.", commando.String, "").
		AddFlag("time-unit,u", "The time unit to display results in: ns, us, ms, s, min or h.", commando.String, "").
		AddFlag("export,e", "Comma separated list of export formats: json, csv, markdown, asciidoc, yaml, text or all.", commando.String, "").
		AddFlag("outfile,o", "The base name of exported files, without extension.", commando.String, "").
		AddFlag("plot", "Comma separated list of plots to draw: hist, bar, errorbar, boxplot or all.", commando.String, "").
		AddFlag("command-name,n", "Comma separated names of the commands, used in the output.", commando.String, "").
		AddFlag("parameter-scan,P", "A numeric parameter scan, name:min:max[:step], substituted for {name}.", commando.String, "").
		AddFlag("parameter-list,L", "A parameter list, name:value1,value2,..., substituted for {name}.", commando.String, "").
		AddFlag("config", "A YAML benchmark file. Given flags override its values.", commando.String, "").
		AddFlag("no-color", "Disable colored output.", commando.Bool, false).
		SetAction(func(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
			if err := run(args, flags); err != nil {
				internal.Log("red", "Error: "+err.Error())
				os.Exit(1)
			}
		})

	commando.Parse(nil)
}

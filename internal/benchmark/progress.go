package benchmark

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/shravanasati/atomic/v2/internal"
)

// Mode is the phase a run belongs to.
type Mode int

const (
	ShellMode Mode = iota
	WarmupMode
	MainMode
)

var wordMap = map[Mode]string{
	ShellMode:  "shell",
	WarmupMode: "warmup",
	MainMode:   "iteration",
}

var descriptionMap = map[Mode]string{
	ShellMode:  "Measuring shell spawn time",
	WarmupMode: "Performing warmup runs",
	MainMode:   "Performing benchmark runs",
}

// Progress is told about every run so it can render progress.
type Progress interface {
	// Start begins a phase of total runs, total is negative when not yet known.
	Start(mode Mode, total int)
	SetTotal(total int)
	// Next is called before every run.
	Next()
	// Advance is called after every run with the current mean in seconds.
	Advance(estimate float64)
	Finish()
}

// NewProgress picks the progress display for the given options: per-run log lines
// when the commands' output is shown, a progress bar in full style, nothing otherwise.
func NewProgress(opts Options) Progress {
	switch {
	case opts.Style == StyleDisabled:
		return nopProgress{}
	case opts.ShowOutput:
		return &verboseProgress{}
	case opts.Style == StyleFull || opts.Style == StyleNoWarnings:
		return &barProgress{unit: opts.TimeUnit}
	default:
		return nopProgress{}
	}
}

type nopProgress struct{}

func (nopProgress) Start(Mode, int) {}
func (nopProgress) SetTotal(int) {}
func (nopProgress) Next() {}
func (nopProgress) Advance(float64) {}
func (nopProgress) Finish() {}

type barProgress struct {
	bar  *progressbar.ProgressBar
	mode Mode
	unit time.Duration
}

func (p *barProgress) Start(mode Mode, total int) {
	description, ok := descriptionMap[mode]
	if !ok {
		// used internally, ok to panic
		panic(fmt.Sprintf("invalid mode passed to progress: %v", mode))
	}
	p.mode = mode
	p.bar = internal.NewProgressBar(total, description)
}

func (p *barProgress) SetTotal(total int) {
	if p.bar != nil {
		p.bar.ChangeMax(total)
	}
}

func (p *barProgress) Next() {}

func (p *barProgress) Advance(estimate float64) {
	if p.bar == nil {
		return
	}
	p.bar.Add(1)
	if p.mode == MainMode {
		internal.DescribeEstimate(p.bar, internal.FormatTime(estimate, p.unit))
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

type verboseProgress struct {
	word string
	i    int
}

func (p *verboseProgress) Start(mode Mode, total int) {
	word, ok := wordMap[mode]
	if !ok {
		panic(fmt.Sprintf("invalid mode passed to progress: %v", mode))
	}
	p.word = word
	p.i = 0
}

func (p *verboseProgress) SetTotal(int) {}

func (p *verboseProgress) Next() {
	p.i++
	internal.Log("purple", fmt.Sprintf("***********\nRunning %s %d\n***********", p.word, p.i))
}

func (p *verboseProgress) Advance(float64) {}

func (p *verboseProgress) Finish() {}

package export

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/shravanasati/atomic/v2/internal"
	"github.com/shravanasati/atomic/v2/internal/benchmark"
)

var ErrInvalidPlotFormat = errors.New("invalid plot format")

var palette = []color.RGBA{
	{R: 244, G: 164, B: 96, A: 128},  // SandyBrown
	{R: 135, G: 206, B: 235, A: 128}, // SkyBlue
	{R: 60, G: 179, B: 113, A: 128},  // MediumSeaGreen
	{R: 147, G: 112, B: 219, A: 128}, // MediumPurple
	{R: 255, G: 105, B: 180, A: 128}, // HotPink
	{R: 255, G: 165, B: 0, A: 128},   // Orange
	{R: 240, G: 230, B: 140, A: 128}, // Khaki
	{R: 32, G: 178, B: 170, A: 128},  // LightSeaGreen
	{R: 221, G: 160, B: 221, A: 128}, // Plum
	{R: 176, G: 224, B: 230, A: 128}, // PowderBlue
	{R: 186, G: 85, B: 211, A: 128},  // MediumOrchid
	{R: 100, G: 149, B: 237, A: 128}, // CornflowerBlue
}

var plotFormats = []string{"hist", "histogram", "box", "boxplot", "bar", "errorbar"}

// ParsePlotFormats reads a comma separated --plot value into canonical plot kinds:
// histogram, bar, errorbar and boxplot. "all" selects every kind, "none" none.
func ParsePlotFormats(formats string) ([]string, error) {
	var parsed []string
	add := func(f string) {
		if !slices.Contains(parsed, f) {
			parsed = append(parsed, f)
		}
	}
	for _, f := range strings.Split(strings.ToLower(formats), ",") {
		f = strings.TrimSpace(f)
		switch {
		case f == "" || f == "none":
		case f == "all":
			return []string{"histogram", "bar", "errorbar", "boxplot"}, nil
		case !slices.Contains(plotFormats, f):
			return nil, fmt.Errorf("%w: %s", ErrInvalidPlotFormat, f)
		case f == "hist":
			add("histogram")
		case f == "box":
			add("boxplot")
		default:
			add(f)
		}
	}
	return parsed, nil
}

// inUnit converts seconds to the plot's time unit.
func inUnit(values []float64, unit time.Duration) plotter.Values {
	v := make(plotter.Values, len(values))
	for i, s := range values {
		v[i] = internal.ConvertToTimeUnit(s, unit)
	}
	return v
}

func commandNames(results []*benchmark.Result) []string {
	return internal.MapFunc[[]*benchmark.Result, []string](func(r *benchmark.Result) string { return r.Command }, results)
}

func histogram(results []*benchmark.Result, unit time.Duration) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Histogram"
	p.X.Label.Text = fmt.Sprintf("Time (in %s)", internal.UnitSuffix(unit))
	p.Y.Label.Text = "Runs"

	for i, result := range results {
		h, err := plotter.NewHist(inUnit(result.Times, unit), 16)
		if err != nil {
			return nil, err
		}
		h.FillColor = palette[i%len(palette)]
		p.Legend.Add(result.Command, h)
		p.Add(h)
	}
	p.Legend.Top = true
	return p, nil
}

func barPlot(results []*benchmark.Result, unit time.Duration) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Bar Chart"
	p.Y.Label.Text = fmt.Sprintf("Mean times (in %s)", internal.UnitSuffix(unit))

	means := inUnit(internal.MapFunc[[]*benchmark.Result, []float64](func(r *benchmark.Result) float64 { return r.Mean }, results), unit)
	bars, err := plotter.NewBarChart(means, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)

	p.Add(bars)
	p.NominalX(commandNames(results)...)
	return p, nil
}

// errorPoints are the means with their standard deviation as error.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func errorBarPlot(results []*benchmark.Result, unit time.Duration) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Mean and standard deviation"
	p.Y.Label.Text = fmt.Sprintf("Time (in %s)", internal.UnitSuffix(unit))

	points := errorPoints{
		XYs:     make(plotter.XYs, len(results)),
		YErrors: make(plotter.YErrors, len(results)),
	}
	for i, r := range results {
		mean := internal.ConvertToTimeUnit(r.Mean, unit)
		var sd float64
		if r.StdDev != nil {
			sd = internal.ConvertToTimeUnit(*r.StdDev, unit)
		}
		points.XYs[i] = plotter.XY{X: float64(i), Y: mean}
		points.YErrors[i].Low = math.Min(sd, mean)
		points.YErrors[i].High = sd
	}

	scatter, err := plotter.NewScatter(points.XYs)
	if err != nil {
		return nil, err
	}
	scatter.Color = plotutil.Color(0)
	errorBars, err := plotter.NewYErrorBars(points)
	if err != nil {
		return nil, err
	}

	p.Add(scatter, errorBars)
	p.NominalX(commandNames(results)...)
	return p, nil
}

func boxPlot(results []*benchmark.Result, unit time.Duration) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Box Plot"
	p.Y.Label.Text = fmt.Sprintf("Time (in %s)", internal.UnitSuffix(unit))

	for i, r := range results {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), inUnit(r.Times, unit))
		if err != nil {
			return nil, err
		}
		box.FillColor = palette[i%len(palette)]
		p.Add(box)
	}
	p.NominalX(commandNames(results)...)
	return p, nil
}

// Plot saves the given plot kinds of the results as PNG files in dir and returns
// their paths.
func Plot(kinds []string, results []*benchmark.Result, unit time.Duration, dir string) ([]string, error) {
	width := vg.Length(max(4, len(results))) * vg.Inch

	var written []string
	for _, kind := range kinds {
		var (
			p        *plot.Plot
			err      error
			filename string
		)
		switch kind {
		case "histogram":
			p, err = histogram(results, unit)
			filename = "histogram.png"
		case "bar":
			p, err = barPlot(results, unit)
			filename = "barchart.png"
		case "errorbar":
			p, err = errorBarPlot(results, unit)
			filename = "errorbar.png"
		case "boxplot":
			p, err = boxPlot(results, unit)
			filename = "boxplot.png"
		default:
			return written, fmt.Errorf("%w: %s", ErrInvalidPlotFormat, kind)
		}
		if err != nil {
			return written, fmt.Errorf("unable to plot %s: %w", kind, err)
		}

		path := filepath.Join(dir, filename)
		if err := p.Save(width, 4*vg.Inch, path); err != nil {
			return written, fmt.Errorf("unable to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

package visualization

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"saleseda/internal/dataprocessing"
	"saleseda/internal/errors"
)

var (
	barColor     = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	densityColor = color.RGBA{R: 221, G: 132, B: 82, A: 255}
)

// densitySamples is the number of points drawn along the density curve
const densitySamples = 200

// Config sets the figure size in inches
type Config struct {
	Width  float64
	Height float64
}

// Visualizer renders distribution and count figures as PNG files
type Visualizer struct {
	logger *slog.Logger
	width  vg.Length
	height vg.Length
}

// NewVisualizer creates a visualizer. Non-positive sizes default to 8x5 inches.
func NewVisualizer(logger *slog.Logger, cfg Config) *Visualizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Width <= 0 {
		cfg.Width = 8
	}
	if cfg.Height <= 0 {
		cfg.Height = 5
	}
	return &Visualizer{
		logger: logger,
		width:  vg.Length(cfg.Width) * vg.Inch,
		height: vg.Length(cfg.Height) * vg.Inch,
	}
}

// PlotDistribution draws a histogram of a numeric column with a Gaussian
// density curve scaled to counts, and saves it to path. Missing values are
// skipped; a column with no values yields a figure with empty axes.
func (v *Visualizer) PlotDistribution(ctx context.Context, t *dataprocessing.Table, column, path string) error {
	kind, err := t.Kind(column)
	if err != nil {
		return err
	}

	var values plotter.Values
	switch {
	case kind.IsNumeric():
		raw, err := t.Floats(column)
		if err != nil {
			return err
		}
		for _, x := range raw {
			if !math.IsNaN(x) {
				values = append(values, x)
			}
		}
	case !allMissing(t, column):
		return errors.NewColumnError(column, "distribution plots need a numeric column")
	}

	p := plot.New()
	p.Title.Text = "Distribution Plot for " + displayName(column)
	p.X.Label.Text = column
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	bins := 0
	if len(values) > 0 {
		bins = AutoBins(values)
		hist, err := plotter.NewHist(values, bins)
		if err != nil {
			return errors.NewRenderError(fmt.Sprintf("failed to bin column %s", column), err)
		}
		hist.FillColor = barColor
		hist.LineStyle.Color = color.White
		p.Add(hist)

		if h := ScottBandwidth(values); h > 0 {
			density := KDE(values, h)
			binWidth := hist.Width
			scale := float64(len(values)) * binWidth

			curve := plotter.NewFunction(func(x float64) float64 { return density(x) * scale })
			curve.XMin = hist.Bins[0].Min - 3*h
			curve.XMax = hist.Bins[len(hist.Bins)-1].Max + 3*h
			curve.Samples = densitySamples
			curve.LineStyle.Color = densityColor
			curve.LineStyle.Width = vg.Points(2)
			p.Add(curve)
		}
	}

	if err := v.save(p, path); err != nil {
		return err
	}

	v.logger.InfoContext(ctx, "Distribution figure written",
		slog.String("column", column),
		slog.Int("values", len(values)),
		slog.Int("bins", bins),
		slog.String("file", path))
	return nil
}

// PlotCategoryCounts draws a bar per distinct value in natural category order
// and saves it to path
func (v *Visualizer) PlotCategoryCounts(ctx context.Context, t *dataprocessing.Table, column, path string) error {
	order, err := dataprocessing.CategoryOrder(t, column)
	if err != nil {
		return err
	}
	report, err := dataprocessing.UniqueValueReport(t, column)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Count Plot for " + displayName(column)
	p.X.Label.Text = displayName(column)
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	if len(order) > 0 {
		counts := make(plotter.Values, len(order))
		for i, value := range order {
			n, _ := report.Count(value)
			counts[i] = float64(n)
		}

		barWidth := (v.width * 0.8) / vg.Length(len(order)+1)
		if barWidth > vg.Points(40) {
			barWidth = vg.Points(40)
		}
		bars, err := plotter.NewBarChart(counts, barWidth)
		if err != nil {
			return errors.NewRenderError(fmt.Sprintf("failed to build count plot for %s", column), err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalX(order...)

		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	if err := v.save(p, path); err != nil {
		return err
	}

	v.logger.InfoContext(ctx, "Count figure written",
		slog.String("column", column),
		slog.Int("categories", len(order)),
		slog.String("file", path))
	return nil
}

// save writes the plot as an image, format chosen by the file extension
func (v *Visualizer) save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewRenderError(fmt.Sprintf("failed to create figure directory for %s", path), err)
	}
	if err := p.Save(v.width, v.height, path); err != nil {
		return errors.NewRenderError(fmt.Sprintf("failed to save figure %s", path), err)
	}
	return nil
}

// allMissing reports whether a column holds no values at all. Such columns
// carry no inferred type.
func allMissing(t *dataprocessing.Table, column string) bool {
	_, missing, err := t.Strings(column)
	if err != nil {
		return false
	}
	for _, m := range missing {
		if !m {
			return false
		}
	}
	return true
}

// displayName turns unit_price into Unit Price
func displayName(column string) string {
	words := strings.Fields(strings.ReplaceAll(column, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Package charts renders the dataset aggregates to PNG files with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"imdb-visualizer/utils"
)

// Output file names.
const (
	TopDirectorsFile = "top_directors.png"
	DecadeTrendsFile = "decade_trends.png"
	CorrelationFile  = "correlation_matrix.png"
)

// Renderer writes charts into a directory at a fixed resolution.
type Renderer struct {
	outputDir string
	dpi       int
	logger    *utils.Logger
}

// NewRenderer creates a Renderer writing into outputDir at dpi dots per inch.
func NewRenderer(outputDir string, dpi int, logger *utils.Logger) *Renderer {
	return &Renderer{outputDir: outputDir, dpi: dpi, logger: logger}
}

// save draws onto a w×h inch image and writes it as PNG to name inside the output dir.
func (r *Renderer) save(name string, w, h vg.Length, drawFn func(dc draw.Canvas)) (string, error) {
	start := time.Now()

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("charts: create output dir: %w", err)
	}

	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.dpi))
	drawFn(draw.New(c))

	path := filepath.Join(r.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("charts: create file %q: %w", path, err)
	}

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("charts: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("charts: close %q: %w", path, err)
	}

	r.logger.Duration(start, "[charts] Wrote %s", path)
	return path, nil
}

// newPlot returns a plot styled like the rest of the chart set.
func newPlot(title, xLabel, yLabel string, titleSize vg.Length) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = titleSize
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Add(plotter.NewGrid())
	return p
}

// addBars adds one bar per value at x = 0..n-1, each in its own colour.
func addBars(p *plot.Plot, values []float64, width vg.Length) error {
	colors := sequentialColors(len(values))
	for i, v := range values {
		bar, err := plotter.NewBarChart(plotter.Values{finite(v)}, width)
		if err != nil {
			return fmt.Errorf("charts: bar %d: %w", i, err)
		}
		bar.XMin = float64(i)
		bar.Color = colors[i]
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}
	p.Y.Min = 0
	return nil
}

// sequentialColors samples n colours from the perceptually uniform Kindlmann map,
// skipping its near-black and near-white ends.
func sequentialColors(n int) []color.Color {
	cm := moreland.Kindlmann()
	cm.SetMin(0)
	cm.SetMax(1)

	colors := make([]color.Color, n)
	for i := range colors {
		v := 0.5
		if n > 1 {
			v = 0.2 + 0.65*float64(i)/float64(n-1)
		}
		c, err := cm.At(v)
		if err != nil {
			c = color.Gray{Y: 128}
		}
		colors[i] = c
	}
	return colors
}

// rotateXLabels tilts nominal x labels so long names do not overlap.
func rotateXLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// finite maps NaN and ±Inf to 0; plotters reject them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

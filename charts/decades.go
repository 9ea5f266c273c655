package charts

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"imdb-visualizer/models"
)

// DecadeTrends renders the four per-decade panels as a 2×2 grid to decade_trends.png.
func (r *Renderer) DecadeTrends(stats []models.DecadeStats) (string, error) {
	if len(stats) == 0 {
		return "", errors.New("charts: no decades to plot")
	}

	labels := make([]string, len(stats))
	gross := make([]float64, len(stats))
	runtime := make([]float64, len(stats))
	count := make([]float64, len(stats))
	for i, d := range stats {
		labels[i] = strconv.Itoa(d.Decade)
		gross[i] = d.MeanGross
		runtime[i] = d.MeanRuntime
		count[i] = float64(d.Count)
	}

	ratingsPlot, err := ratingsBoxPlot(stats, labels)
	if err != nil {
		return "", err
	}
	grossPlot, err := decadeBarPlot("Average Gross Earnings by Decade", "Average Gross ($)", labels, gross)
	if err != nil {
		return "", err
	}
	grossPlot.Y.Tick.Marker = sciTicks{}
	runtimePlot, err := decadeBarPlot("Average Runtime by Decade", "Average Runtime (minutes)", labels, runtime)
	if err != nil {
		return "", err
	}
	countPlot, err := decadeBarPlot("Number of Movies by Decade", "Count", labels, count)
	if err != nil {
		return "", err
	}

	plots := [][]*plot.Plot{
		{ratingsPlot, grossPlot},
		{runtimePlot, countPlot},
	}
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
		PadTop:    vg.Points(12),
		PadBottom: vg.Points(12),
		PadLeft:   vg.Points(12),
		PadRight:  vg.Points(12),
	}

	return r.save(DecadeTrendsFile, 15*vg.Inch, 10*vg.Inch, func(dc draw.Canvas) {
		canvases := plot.Align(plots, tiles, dc)
		for row := range plots {
			for col := range plots[row] {
				plots[row][col].Draw(canvases[row][col])
			}
		}
	})
}

func ratingsBoxPlot(stats []models.DecadeStats, labels []string) (*plot.Plot, error) {
	p := newPlot("IMDb Ratings by Decade", "Decade", "IMDb Rating", vg.Points(14))
	colors := sequentialColors(len(stats))
	for i, d := range stats {
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(d.Ratings))
		if err != nil {
			return nil, fmt.Errorf("charts: box plot for %ds: %w", d.Decade, err)
		}
		box.FillColor = colors[i]
		p.Add(box)
	}
	p.NominalX(labels...)
	return p, nil
}

func decadeBarPlot(title, yLabel string, labels []string, values []float64) (*plot.Plot, error) {
	p := newPlot(title, "Decade", yLabel, vg.Points(14))
	if err := addBars(p, values, vg.Points(24)); err != nil {
		return nil, err
	}
	p.NominalX(labels...)
	return p, nil
}

// sciTicks labels the default ticks in scientific notation.
type sciTicks struct{}

func (sciTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = strconv.FormatFloat(ticks[i].Value, 'e', 1, 64)
		}
	}
	return ticks
}

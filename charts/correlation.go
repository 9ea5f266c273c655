package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"imdb-visualizer/models"
)

const colorBarWidth = 1.2 * vg.Inch

// CorrelationMatrix renders m as an annotated heatmap to correlation_matrix.png.
func (r *Renderer) CorrelationMatrix(m models.CorrelationMatrix) (string, error) {
	n := len(m.Values)
	if n == 0 || len(m.Labels) != n {
		return "", errors.New("charts: correlation matrix is empty or malformed")
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	heat := plotter.NewHeatMap(correlationGrid{m: m}, cm.Palette(255))
	heat.Min, heat.Max = -1, 1
	heat.NaN = color.Gray{Y: 220}

	p := plot.New()
	p.Title.Text = "Correlation Matrix"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Add(heat)

	annotations, err := cellLabels(m)
	if err != nil {
		return "", err
	}
	p.Add(annotations)

	// Row 0 of the matrix is drawn at the top.
	yLabels := make([]string, n)
	for i, l := range m.Labels {
		yLabels[n-1-i] = l
	}
	p.NominalX(m.Labels...)
	p.NominalY(yLabels...)
	rotateXLabels(p)

	legend := plot.New()
	legend.HideX()
	legend.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	return r.save(CorrelationFile, 10*vg.Inch, 8*vg.Inch, func(dc draw.Canvas) {
		heatArea, barArea := splitColorBar(dc)
		p.Draw(heatArea)
		legend.Draw(barArea)
	})
}

// splitColorBar splits dc into the heatmap area and a colorBarWidth strip on its right.
func splitColorBar(dc draw.Canvas) (heat, bar draw.Canvas) {
	width := dc.Max.X - dc.Min.X
	return draw.Crop(dc, 0, -colorBarWidth, 0, 0), draw.Crop(dc, width-colorBarWidth, 0, 0, 0)
}

// cellLabels annotates every heatmap cell with its value.
func cellLabels(m models.CorrelationMatrix) (*plotter.Labels, error) {
	n := len(m.Values)
	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(n - 1 - row)})
			labels = append(labels, formatCorrelation(m.Values[row][col]))
		}
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("charts: heatmap labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
		l.TextStyle[i].Font.Size = vg.Points(12)
		row, col := i/n, i%n
		if v := m.Values[row][col]; !math.IsNaN(v) && math.Abs(v) > 0.6 {
			l.TextStyle[i].Color = color.White
		} else {
			l.TextStyle[i].Color = color.Black
		}
	}
	return l, nil
}

func formatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// correlationGrid adapts a CorrelationMatrix to plotter.GridXYZ. Grid row 0 is
// the bottom of the plot, so it maps to the last matrix row.
type correlationGrid struct {
	m models.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) {
	n := len(g.m.Values)
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	n := len(g.m.Values)
	return g.m.Values[n-1-r][c]
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

func (g correlationGrid) Min() float64 { return -1 }
func (g correlationGrid) Max() float64 { return 1 }

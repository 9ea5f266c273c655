package charts

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"imdb-visualizer/models"
)

// TopDirectors renders ratings as a bar chart to top_directors.png. The title
// names the requested n even when fewer directors were ranked.
func (r *Renderer) TopDirectors(ratings []models.DirectorRating, n int) (string, error) {
	if len(ratings) == 0 {
		return "", errors.New("charts: no director ratings to plot")
	}

	p := newPlot(directorsTitle(n), "Director", "Average IMDB Rating", vg.Points(16))

	names := make([]string, len(ratings))
	values := make([]float64, len(ratings))
	for i, d := range ratings {
		names[i] = d.Director
		values[i] = d.MeanRating
	}

	if err := addBars(p, values, vg.Points(40)); err != nil {
		return "", err
	}
	p.NominalX(names...)
	rotateXLabels(p)

	return r.save(TopDirectorsFile, 12*vg.Inch, 6*vg.Inch, func(dc draw.Canvas) {
		p.Draw(dc)
	})
}

func directorsTitle(n int) string {
	return fmt.Sprintf("Top %d Directors by Average IMDB Rating", n)
}

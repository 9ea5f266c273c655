package charts

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"imdb-visualizer/models"
	"imdb-visualizer/utils"
)

const testDPI = 40

func newTestRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRenderer(dir, testDPI, utils.NewNopLogger()), dir
}

func requirePNG(t *testing.T, path string, wantW, wantH int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, wantW, cfg.Width)
	assert.Equal(t, wantH, cfg.Height)
}

func TestRenderTopDirectors(t *testing.T) {
	r, dir := newTestRenderer(t)
	path, err := r.TopDirectors([]models.DirectorRating{
		{Director: "Frank Darabont", MeanRating: 9.3, Movies: 1},
		{Director: "Francis Ford Coppola", MeanRating: 8.6, Movies: 3},
		{Director: "Christopher Nolan", MeanRating: 8.46, Movies: 8},
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, TopDirectorsFile), path)
	requirePNG(t, path, 12*testDPI, 6*testDPI)
}

func TestDirectorsTitleNamesRequestedCount(t *testing.T) {
	assert.Equal(t, "Top 10 Directors by Average IMDB Rating", directorsTitle(10))
	assert.Equal(t, "Top 5 Directors by Average IMDB Rating", directorsTitle(5))
}

func TestRenderTopDirectorsEmpty(t *testing.T) {
	r, _ := newTestRenderer(t)
	_, err := r.TopDirectors(nil, 10)
	assert.Error(t, err)
}

func TestRenderDecadeTrends(t *testing.T) {
	r, _ := newTestRenderer(t)
	path, err := r.DecadeTrends([]models.DecadeStats{
		{Decade: 1970, Ratings: []float64{9.2, 9.0, 8.1}, MeanGross: 1.2e8, MeanRuntime: 160, Count: 3},
		{Decade: 1990, Ratings: []float64{9.3, 8.9}, MeanGross: 4.1e7, MeanRuntime: 142, Count: 2},
		{Decade: 2000, Ratings: []float64{9.0}, MeanGross: math.NaN(), MeanRuntime: 152, Count: 1},
	})
	require.NoError(t, err)
	requirePNG(t, path, 15*testDPI, 10*testDPI)
}

func TestRenderCorrelationMatrix(t *testing.T) {
	r, _ := newTestRenderer(t)
	m := models.CorrelationMatrix{
		Labels: models.NumericColumns,
		Values: [][]float64{
			{1, 0.27, 0.49, 0.24, 0.1},
			{0.27, 1, -0.02, -0.03, math.NaN()},
			{0.49, -0.02, 1, 0.17, 0.57},
			{0.24, -0.03, 0.17, 1, 0.13},
			{0.1, math.NaN(), 0.57, 0.13, 1},
		},
	}
	path, err := r.CorrelationMatrix(m)
	require.NoError(t, err)
	requirePNG(t, path, 10*testDPI, 8*testDPI)
}

func TestSplitColorBar(t *testing.T) {
	c := vgimg.NewWith(vgimg.UseWH(10*vg.Inch, 8*vg.Inch), vgimg.UseDPI(testDPI))
	dc := draw.New(c)

	heat, bar := splitColorBar(dc)

	assert.Equal(t, dc.Min, heat.Min)
	assert.Equal(t, dc.Max.Y, heat.Max.Y)
	assert.InDelta(t, float64(dc.Max.X-colorBarWidth), float64(heat.Max.X), 1e-9)

	assert.InDelta(t, float64(dc.Max.X-colorBarWidth), float64(bar.Min.X), 1e-9)
	assert.Equal(t, dc.Max, bar.Max)
	assert.Equal(t, dc.Min.Y, bar.Min.Y)
}

func TestRenderCorrelationMatrixMalformed(t *testing.T) {
	r, _ := newTestRenderer(t)
	_, err := r.CorrelationMatrix(models.CorrelationMatrix{Labels: []string{"a"}, Values: nil})
	assert.Error(t, err)
}

func TestSciTicks(t *testing.T) {
	for _, tick := range (sciTicks{}).Ticks(0, 3e8) {
		if tick.Label == "" {
			continue
		}
		assert.Contains(t, tick.Label, "e+")
	}
}

func TestCorrelationGridOrientation(t *testing.T) {
	g := correlationGrid{m: models.CorrelationMatrix{
		Labels: []string{"a", "b"},
		Values: [][]float64{{1, 0.5}, {0.5, 1}},
	}}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	// Bottom-left cell is the last matrix row, first column.
	assert.Equal(t, 0.5, g.Z(0, 0))
	assert.Equal(t, 1.0, g.Z(0, 1))
}

package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"imdb-visualizer/models"
	"imdb-visualizer/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes every aggregate over the cleaned movies.
func (s *InsightService) Generate(movies []*models.Movie, topN int) *models.Report {
	return &models.Report{
		TotalMovies:  len(movies),
		TopDirectors: s.TopDirectors(movies, topN),
		Decades:      s.DecadeTrends(movies),
		Correlation:  s.Correlation(movies),
	}
}

// TopDirectors groups movies by director, averages their ratings and returns the
// n highest means. Groups are enumerated by director name, so equal means keep
// ascending name order. Movies without a director or a rating are left out.
func (s *InsightService) TopDirectors(movies []*models.Movie, n int) []models.DirectorRating {
	if n <= 0 {
		return nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	skipped := 0
	for _, m := range movies {
		if isAbsent(m.Director) || math.IsNaN(m.Rating) {
			skipped++
			continue
		}
		sums[m.Director] += m.Rating
		counts[m.Director]++
	}
	if skipped > 0 {
		s.logger.Warn("[insights] %d movies without %s or %s left out of the ranking",
			skipped, models.ColDirector, models.ColRating)
	}

	ratings := make([]models.DirectorRating, 0, len(counts))
	for director, cnt := range counts {
		ratings = append(ratings, models.DirectorRating{
			Director:   director,
			MeanRating: sums[director] / float64(cnt),
			Movies:     cnt,
		})
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].Director < ratings[j].Director
	})
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].MeanRating > ratings[j].MeanRating
	})

	if len(ratings) > n {
		ratings = ratings[:n]
	}
	s.logger.Debug("[insights] %d directors ranked, keeping %d", len(counts), len(ratings))
	return ratings
}

// DecadeTrends groups movies by decade, ascending.
func (s *InsightService) DecadeTrends(movies []*models.Movie) []models.DecadeStats {
	byDecade := make(map[int][]*models.Movie)
	for _, m := range movies {
		byDecade[m.Decade] = append(byDecade[m.Decade], m)
	}

	stats := make([]models.DecadeStats, 0, len(byDecade))
	for decade, group := range byDecade {
		ratings := make([]float64, 0, len(group))
		var grosses []float64
		var runtime float64
		for _, m := range group {
			ratings = append(ratings, m.Rating)
			if !math.IsNaN(m.Gross) {
				grosses = append(grosses, m.Gross)
			}
			runtime += float64(m.Runtime)
		}
		stats = append(stats, models.DecadeStats{
			Decade:      decade,
			Ratings:     ratings,
			MeanGross:   Mean(grosses),
			MeanRuntime: runtime / float64(len(group)),
			Count:       len(group),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Decade < stats[j].Decade
	})
	return stats
}

// Correlation computes the Pearson correlation matrix over models.NumericColumns.
// The matrix is exactly symmetric; the diagonal is 1 for columns with variance
// and NaN for constant columns.
func (s *InsightService) Correlation(movies []*models.Movie) models.CorrelationMatrix {
	cols := models.NumericColumns
	data := make([][]float64, len(cols))
	for c, col := range cols {
		data[c] = make([]float64, len(movies))
		for i, m := range movies {
			data[c][i] = m.Numeric(col)
		}
	}

	values := make([][]float64, len(cols))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		if Variance(data[i]) > 0 {
			values[i][i] = 1
		} else {
			values[i][i] = math.NaN()
			s.logger.Warn("[insights] %s has no variance, its correlations are undefined", cols[i])
		}
		for j := i + 1; j < len(cols); j++ {
			r := Pearson(data[i], data[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return models.CorrelationMatrix{
		Labels: append([]string(nil), cols...),
		Values: values,
	}
}

// Print writes a human-readable summary of the report.
func Print(w io.Writer, r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  IMDB DATASET SUMMARY\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Movies analysed : %d\n\n", r.TotalMovies)

	fmt.Fprintf(w, "  Top %d Directors by Average Rating\n", len(r.TopDirectors))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopDirectors) == 0 {
		fmt.Fprintf(w, "  No directors found\n")
	}
	for i, d := range r.TopDirectors {
		fmt.Fprintf(w, "  %2d. %-36s %.2f (%d)\n", i+1, truncate(d.Director, 36), d.MeanRating, d.Movies)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Movies by Decade\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, d := range r.Decades {
		fmt.Fprintf(w, "  %ds  %4d movies  %6.1f min  $%.3e\n", d.Decade, d.Count, d.MeanRuntime, d.MeanGross)
	}
	fmt.Fprintln(w)

	if a, b, v, ok := strongestCorrelation(r.Correlation); ok {
		fmt.Fprintf(w, "  Strongest correlation: %s ~ %s (%.2f)\n", a, b, v)
	}
	fmt.Fprintf(w, "%s\n\n", sep)
}

// strongestCorrelation returns the off-diagonal pair with the largest |r|.
func strongestCorrelation(m models.CorrelationMatrix) (string, string, float64, bool) {
	best, bi, bj := -1.0, -1, -1
	for i := range m.Values {
		for j := i + 1; j < len(m.Values[i]); j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			if math.Abs(v) > best {
				best, bi, bj = math.Abs(v), i, j
			}
		}
	}
	if bi < 0 {
		return "", "", 0, false
	}
	return m.Labels[bi], m.Labels[bj], m.Values[bi][bj], true
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

package models

// DirectorRating is the mean audience rating of one director's movies.
type DirectorRating struct {
	Director   string
	MeanRating float64
	Movies     int
}

// DecadeStats holds the per-decade metrics plotted in the decade trends grid.
type DecadeStats struct {
	Decade      int
	Ratings     []float64
	MeanGross   float64
	MeanRuntime float64
	Count       int
}

// CorrelationMatrix is a square Pearson correlation matrix; Values[i][j]
// correlates Labels[i] with Labels[j].
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// Report holds everything computed over the cleaned dataset.
type Report struct {
	TotalMovies  int
	TopDirectors []DirectorRating
	Decades      []DecadeStats
	Correlation  CorrelationMatrix
}

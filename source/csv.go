package source

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"imdb-visualizer/models"
)

// ParseCSV reads the dataset and projects it onto models.Columns. Every column is
// read as text; typing is left to the cleaner. Extra columns are dropped and a
// missing projected column is an error.
func ParseCSV(r io.Reader) ([]*models.RawMovie, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("source: read csv: %w", df.Err)
	}

	df = df.Select(models.Columns)
	if df.Err != nil {
		return nil, fmt.Errorf("source: select columns: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, nil
	}

	// records[0] is the header, already in models.Columns order.
	movies := make([]*models.RawMovie, 0, len(records)-1)
	for _, rec := range records[1:] {
		movies = append(movies, &models.RawMovie{
			Director:     rec[0],
			Rating:       rec[1],
			ReleasedYear: rec[2],
			MetaScore:    rec[3],
			Votes:        rec[4],
			Runtime:      rec[5],
			Gross:        rec[6],
		})
	}
	return movies, nil
}

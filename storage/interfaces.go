package storage

import "imdb-visualizer/models"

// MovieWriter is the interface any export backend for the cleaned table must satisfy.
type MovieWriter interface {
	Write(movies []*models.Movie) error
	Close() error
}

// ReportWriter is the interface for persisting the computed aggregates.
type ReportWriter interface {
	WriteReport(report *models.Report) error
	Close() error
}

var (
	_ MovieWriter  = (*CSVWriter)(nil)
	_ MovieWriter  = (*PostgresWriter)(nil)
	_ ReportWriter = (*XLSXWriter)(nil)
)

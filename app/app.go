// Package app wires the loader, the aggregations, the chart renderers and the
// optional exporters into one linear run.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"imdb-visualizer/charts"
	"imdb-visualizer/config"
	"imdb-visualizer/models"
	"imdb-visualizer/services"
	"imdb-visualizer/source"
	"imdb-visualizer/storage"
	"imdb-visualizer/utils"
)

// App runs the pipeline once.
type App struct {
	cfg      *config.Config
	logger   *utils.Logger
	out      io.Writer
	loader   *source.Loader
	insights *services.InsightService
	renderer *charts.Renderer
}

// New builds an App from cfg. Progress lines and the summary go to out.
func New(cfg *config.Config, logger *utils.Logger, out io.Writer) *App {
	fetcher := source.NewFetcher(cfg.FetchTimeout, cfg.FetchRetries, logger)
	cleaner := services.NewCleaner(logger, cfg.FallbackYear)

	return &App{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		loader:   source.NewLoader(cfg.DatasetURL, fetcher, cleaner, logger),
		insights: services.NewInsightService(logger),
		renderer: charts.NewRenderer(cfg.OutputDir, cfg.ChartDPI, logger),
	}
}

// Run loads the dataset and writes the three charts, then any configured exports.
// The first failing stage stops the run; files written before it are kept.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()

	a.progress("Loading and preprocessing data...")
	movies, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	report := a.insights.Generate(movies, a.cfg.TopN)

	a.progress("Plotting top directors...")
	if _, err := a.renderer.TopDirectors(report.TopDirectors, a.cfg.TopN); err != nil {
		return fmt.Errorf("plot top directors: %w", err)
	}

	a.progress("Plotting decade trends...")
	if _, err := a.renderer.DecadeTrends(report.Decades); err != nil {
		return fmt.Errorf("plot decade trends: %w", err)
	}

	a.progress("Plotting correlation matrix...")
	if _, err := a.renderer.CorrelationMatrix(report.Correlation); err != nil {
		return fmt.Errorf("plot correlation matrix: %w", err)
	}

	if err := a.export(ctx, movies, report); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	services.Print(a.out, report)

	if filepath.Clean(a.cfg.OutputDir) == "." {
		a.progress("All visualizations have been saved to the current directory.")
	} else {
		a.progress(fmt.Sprintf("All visualizations have been saved to %s.", a.cfg.OutputDir))
	}
	a.logger.Duration(start, "[app] Run complete")
	return nil
}

func (a *App) progress(msg string) {
	fmt.Fprintln(a.out, msg)
}

// export runs every configured exporter in the worker pool.
func (a *App) export(ctx context.Context, movies []*models.Movie, report *models.Report) error {
	pool := utils.NewWorkerPool(a.cfg.ExportConcurrency)
	jobs := 0

	if a.cfg.ExportCSVPath != "" {
		jobs++
		pool.Submit(func() error {
			w, err := storage.NewCSVWriter(a.cfg.ExportCSVPath)
			if err != nil {
				return err
			}
			if err := writeMovies(w, movies); err != nil {
				return err
			}
			a.logger.Info("[export] Cleaned table saved to %s", a.cfg.ExportCSVPath)
			return nil
		})
	}

	if a.cfg.PostgresEnabled() {
		jobs++
		pool.Submit(func() error {
			w, err := storage.NewPostgresWriter(ctx, a.cfg.DSN())
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Write(movies); err != nil {
				return err
			}
			n, err := w.Count(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("[export] %d movies stored in PostgreSQL (table: movies)", n)
			return nil
		})
	}

	if a.cfg.SummaryXLSXPath != "" {
		jobs++
		pool.Submit(func() error {
			w, err := storage.NewXLSXWriter(a.cfg.SummaryXLSXPath)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.WriteReport(report); err != nil {
				return err
			}
			a.logger.Info("[export] Summary workbook saved to %s", a.cfg.SummaryXLSXPath)
			return nil
		})
	}

	if jobs == 0 {
		return nil
	}
	a.logger.Debug("[export] Running %d exporters", jobs)
	return pool.Wait()
}

// writeMovies writes and closes w, reporting the first error.
func writeMovies(w storage.MovieWriter, movies []*models.Movie) error {
	if err := w.Write(movies); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

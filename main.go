package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"imdb-visualizer/app"
	"imdb-visualizer/config"
	"imdb-visualizer/utils"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "imdb-visualizer",
		Short: "Render top-director, decade-trend and correlation charts from the IMDb top-1000 dataset",
		Long: `IMDb Visualizer

Downloads the IMDb top-1000 CSV, fills missing values and writes
top_directors.png, decade_trends.png and correlation_matrix.png.

Settings come from .env / environment variables; flags override them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLoggerWith(os.Stdout, cfg.LogLevel, cfg.LogFormat)
			if cfg.EnvFileMissing {
				logger.Debug("[config] No .env file found, falling back to system env vars")
			}

			if err := cfg.Validate(); err != nil {
				logger.Error("[config] Invalid configuration: %v", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Debug("[main] Dataset: %s | output: %s | top: %d | dpi: %d",
				cfg.DatasetURL, cfg.OutputDir, cfg.TopN, cfg.ChartDPI)

			if err := app.New(cfg, logger, os.Stdout).Run(ctx); err != nil {
				logger.Error("[main] %v", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.DatasetURL, "url", cfg.DatasetURL, "dataset CSV URL")
	cmd.Flags().StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "directory the charts are written to")
	cmd.Flags().IntVarP(&cfg.TopN, "top", "n", cfg.TopN, "number of directors in the top-directors chart")
	cmd.Flags().IntVar(&cfg.ChartDPI, "dpi", cfg.ChartDPI, "chart resolution in dots per inch")

	return cmd
}

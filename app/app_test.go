package app

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imdb-visualizer/charts"
	"imdb-visualizer/config"
	"imdb-visualizer/utils"
)

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", "imdb_top20.csv"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/imdb.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url, outDir string) *config.Config {
	return &config.Config{
		DatasetURL:        url,
		OutputDir:         outDir,
		TopN:              10,
		FallbackYear:      1995,
		ChartDPI:          30,
		FetchRetries:      1,
		ExportConcurrency: 2,
	}
}

func TestRunWritesThreeCharts(t *testing.T) {
	srv := fixtureServer(t)
	outDir := t.TempDir()
	cfg := testConfig(srv.URL+"/imdb.csv", outDir)

	var out strings.Builder
	err := New(cfg, utils.NewNopLogger(), &out).Run(context.Background())
	require.NoError(t, err)

	for _, name := range []string{charts.TopDirectorsFile, charts.DecadeTrendsFile, charts.CorrelationFile} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	lines := out.String()
	order := []string{
		"Loading and preprocessing data...",
		"Plotting top directors...",
		"Plotting decade trends...",
		"Plotting correlation matrix...",
		"All visualizations have been saved to " + outDir + ".",
	}
	last := -1
	for _, msg := range order {
		idx := strings.Index(lines, msg)
		require.GreaterOrEqual(t, idx, 0, "missing progress line %q", msg)
		assert.Greater(t, idx, last, "progress line %q out of order", msg)
		last = idx
	}
	assert.Contains(t, lines, "Movies analysed : 20")
	assert.Contains(t, lines, "Frank Darabont")
}

func TestRunExportsCleanedTableAndSummary(t *testing.T) {
	srv := fixtureServer(t)
	outDir := t.TempDir()
	cfg := testConfig(srv.URL+"/imdb.csv", outDir)
	cfg.ExportCSVPath = filepath.Join(outDir, "export", "movies_clean.csv")
	cfg.SummaryXLSXPath = filepath.Join(outDir, "export", "summary.xlsx")

	err := New(cfg, utils.NewNopLogger(), &strings.Builder{}).Run(context.Background())
	require.NoError(t, err)

	f, err := os.Open(cfg.ExportCSVPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 21)

	for _, row := range rows[1:] {
		assert.NotEqual(t, "NaN", row[3], "Meta_score must be filled")
		assert.NotEqual(t, "NaN", row[6], "Gross must be filled")
	}
	// Apollo 13 has no parseable release year.
	assert.Equal(t, "Ron Howard", rows[20][0])
	assert.Equal(t, "1995", rows[20][2])
	assert.Equal(t, "1990", rows[20][7])

	info, err := os.Stat(cfg.SummaryXLSXPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunFailsOnFetchError(t *testing.T) {
	srv := fixtureServer(t)
	outDir := t.TempDir()
	cfg := testConfig(srv.URL+"/missing.csv", outDir)

	var out strings.Builder
	err := New(cfg, utils.NewNopLogger(), &out).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load data")
	assert.Contains(t, err.Error(), "404")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no chart may be written when loading fails")
	assert.NotContains(t, out.String(), "Plotting top directors...")
}

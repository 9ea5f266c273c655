package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"imdb-visualizer/models"
)

// PostgresWriter persists the cleaned movie table to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("postgres: ping: %w", ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS movies (
			id            SERIAL PRIMARY KEY,
			director      TEXT             NOT NULL,
			imdb_rating   NUMERIC(3,1)     NOT NULL,
			released_year INTEGER          NOT NULL,
			meta_score    DOUBLE PRECISION,
			no_of_votes   INTEGER          NOT NULL,
			runtime       INTEGER          NOT NULL,
			gross         DOUBLE PRECISION,
			decade        INTEGER          NOT NULL,
			created_at    TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_movies_director ON movies(director);
		CREATE INDEX IF NOT EXISTS idx_movies_decade   ON movies(decade);
	`)
	return err
}

// Write replaces the table contents with movies. See WriteContext.
func (pw *PostgresWriter) Write(movies []*models.Movie) error {
	return pw.WriteContext(context.Background(), movies)
}

// WriteContext replaces the table contents with movies, in batches, inside one
// transaction. Cancelling ctx rolls the transaction back.
func (pw *PostgresWriter) WriteContext(ctx context.Context, movies []*models.Movie) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(movies); i += batchSize {
		end := i + batchSize
		if end > len(movies) {
			end = len(movies)
		}
		query, args := insertBatch(movies[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const movieColumns = 8

// insertBatch builds a multi-row INSERT for batch.
func insertBatch(batch []*models.Movie) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*movieColumns)

	for idx, m := range batch {
		base := idx * movieColumns
		placeholders := make([]string, movieColumns)
		for k := range placeholders {
			placeholders[k] = fmt.Sprintf("$%d", base+k+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			m.Director, m.Rating, m.ReleasedYear, nullable(m.MetaScore),
			m.Votes, m.Runtime, nullable(m.Gross), m.Decade)
	}

	query := fmt.Sprintf(`
		INSERT INTO movies (director, imdb_rating, released_year, meta_score, no_of_votes, runtime, gross, decade)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// nullable maps NaN to SQL NULL.
func nullable(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: !math.IsNaN(f)}
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// Count returns the number of stored movies.
func (pw *PostgresWriter) Count(ctx context.Context) (int, error) {
	var n int
	if err := pw.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"imdb-visualizer/models"
	"imdb-visualizer/utils"
)

var (
	// yearRegexp matches a bare four-digit year
	yearRegexp = regexp.MustCompile(`^\d{4}$`)
	// runtimeRegexp captures the minutes in values such as "142 min"
	runtimeRegexp = regexp.MustCompile(`^\s*(\S+?)\s*min\s*$`)
)

var errMissingValue = errors.New("missing value")

// dateLayouts are the date-like forms a release year may be written in.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// Cleaner transforms RawMovies into typed, filled Movies.
type Cleaner struct {
	logger       *utils.Logger
	fallbackYear int
}

// NewCleaner creates a Cleaner that fills missing release years with fallbackYear.
func NewCleaner(logger *utils.Logger, fallbackYear int) *Cleaner {
	return &Cleaner{logger: logger, fallbackYear: fallbackYear}
}

// Clean parses raw rows and applies the fill policy.
func (c *Cleaner) Clean(raw []*models.RawMovie) ([]*models.Movie, error) {
	movies, err := c.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.Fill(movies), nil
}

// Parse types every raw row. Unparseable years, critic scores and gross values
// become absent; a malformed rating, vote count or runtime is an error.
func (c *Cleaner) Parse(raw []*models.RawMovie) ([]*models.Movie, error) {
	movies := make([]*models.Movie, 0, len(raw))

	for i, r := range raw {
		row := i + 2 // 1-based, after the header

		rating, err := parseRating(r.Rating)
		if err != nil {
			return nil, fmt.Errorf("cleaner: row %d: %s %q: %w", row, models.ColRating, r.Rating, err)
		}
		votes, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(r.Votes), ",", ""))
		if err != nil {
			return nil, fmt.Errorf("cleaner: row %d: %s %q: %w", row, models.ColVotes, r.Votes, err)
		}
		runtime, err := parseRuntime(r.Runtime)
		if err != nil {
			return nil, fmt.Errorf("cleaner: row %d: %s %q: %w", row, models.ColRuntime, r.Runtime, err)
		}

		year := parseYear(r.ReleasedYear)
		if year == 0 && !isAbsent(r.ReleasedYear) {
			c.logger.Debug("[cleaner] Row %d: unparseable %s %q", row, models.ColReleasedYear, r.ReleasedYear)
		}

		movies = append(movies, &models.Movie{
			Director:     normaliseText(r.Director),
			Rating:       rating,
			ReleasedYear: year,
			MetaScore:    parseOptionalFloat(r.MetaScore),
			Votes:        votes,
			Runtime:      runtime,
			Gross:        parseGross(r.Gross),
		})
	}

	return movies, nil
}

// Fill replaces absent critic scores with the mean of the present ones, absent
// gross values with the median of the present ones and absent years with the
// fallback year, then derives Decade. Fill is idempotent.
func (c *Cleaner) Fill(movies []*models.Movie) []*models.Movie {
	var metaScores, grosses []float64
	for _, m := range movies {
		if !math.IsNaN(m.MetaScore) {
			metaScores = append(metaScores, m.MetaScore)
		}
		if !math.IsNaN(m.Gross) {
			grosses = append(grosses, m.Gross)
		}
	}

	metaFill := Mean(metaScores)
	grossFill := Median(grosses)
	if len(metaScores) == 0 && len(movies) > 0 {
		c.logger.Warn("[cleaner] No %s values present, leaving them empty", models.ColMetaScore)
	}
	if len(grosses) == 0 && len(movies) > 0 {
		c.logger.Warn("[cleaner] No %s values present, leaving them empty", models.ColGross)
	}

	var filledMeta, filledGross, filledYear int
	for _, m := range movies {
		if math.IsNaN(m.MetaScore) && len(metaScores) > 0 {
			m.MetaScore = metaFill
			filledMeta++
		}
		if math.IsNaN(m.Gross) && len(grosses) > 0 {
			m.Gross = grossFill
			filledGross++
		}
		if m.ReleasedYear == 0 {
			m.ReleasedYear = c.fallbackYear
			filledYear++
		}
		m.Decade = models.DecadeOf(m.ReleasedYear)
	}

	c.logger.Info("[cleaner] Filled %d %s (mean %.2f), %d %s (median %.0f), %d %s (%d)",
		filledMeta, models.ColMetaScore, metaFill,
		filledGross, models.ColGross, grossFill,
		filledYear, models.ColReleasedYear, c.fallbackYear)
	return movies
}

// parseYear returns the year of a date-like value, or 0 when it cannot be parsed.
func parseYear(raw string) int {
	s := strings.TrimSpace(raw)
	if yearRegexp.MatchString(s) {
		y, _ := strconv.Atoi(s)
		return y
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	return 0
}

// parseRating requires a finite rating; absent markers such as NA are rejected.
func parseRating(raw string) (float64, error) {
	if isAbsent(raw) {
		return 0, errMissingValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errMissingValue
	}
	return v, nil
}

// parseRuntime strips the trailing "min" label and parses the minutes.
func parseRuntime(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if m := runtimeRegexp.FindStringSubmatch(s); len(m) == 2 {
		s = m[1]
	}
	return strconv.Atoi(s)
}

// parseGross strips thousands separators; absent or unparseable values are NaN.
func parseGross(raw string) float64 {
	return parseOptionalFloat(strings.ReplaceAll(raw, ",", ""))
}

func parseOptionalFloat(raw string) float64 {
	if isAbsent(raw) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isAbsent(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

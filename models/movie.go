package models

// Source column names in the IMDb CSV.
const (
	ColDirector     = "Director"
	ColRating       = "IMDB_Rating"
	ColReleasedYear = "Released_Year"
	ColMetaScore    = "Meta_score"
	ColVotes        = "No_of_Votes"
	ColRuntime      = "Runtime"
	ColGross        = "Gross"
	ColDecade       = "Decade"
)

// Columns is the projection applied to the source CSV, in output order.
var Columns = []string{
	ColDirector, ColRating, ColReleasedYear, ColMetaScore, ColVotes, ColRuntime, ColGross,
}

// NumericColumns are the columns the correlation matrix is computed over, in order.
var NumericColumns = []string{
	ColRating, ColMetaScore, ColVotes, ColRuntime, ColGross,
}

// RawMovie holds the projected columns exactly as read from the CSV.
type RawMovie struct {
	Director     string
	Rating       string
	ReleasedYear string
	MetaScore    string
	Votes        string
	Runtime      string
	Gross        string
}

// Movie is a typed record. Before filling, ReleasedYear is 0 when absent and
// MetaScore/Gross are NaN when absent.
type Movie struct {
	Director     string
	Rating       float64
	ReleasedYear int
	MetaScore    float64
	Votes        int
	Runtime      int
	Gross        float64
	Decade       int
}

// Numeric returns the value of one of NumericColumns.
func (m *Movie) Numeric(col string) float64 {
	switch col {
	case ColRating:
		return m.Rating
	case ColMetaScore:
		return m.MetaScore
	case ColVotes:
		return float64(m.Votes)
	case ColRuntime:
		return float64(m.Runtime)
	case ColGross:
		return m.Gross
	}
	panic("models: unknown numeric column " + col)
}

// DecadeOf floors a year to its decade.
func DecadeOf(year int) int {
	return (year / 10) * 10
}

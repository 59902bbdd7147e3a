package movie

import (
	"regexp"
	"strings"
	"time"

	"mflix/errs"
)

var (
	ErrInvalidID          = errs.Errorf(errs.EINVALID, "invalid movie ID format")
	ErrMovieNotFound      = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrTitleRequired      = errs.Errorf(errs.EINVALID, "title is required")
	ErrInvalidUpdate      = errs.Errorf(errs.EINVALID, "no update data provided")
	ErrEmptyBatch         = errs.Errorf(errs.EINVALID, "request body must be a non-empty array of movie objects")
	ErrBatchUpdateInvalid = errs.Errorf(errs.EINVALID, "both filter and update objects are required")
	ErrEmptyUpdate        = errs.Errorf(errs.EINVALID, "update object cannot be empty")
	ErrEmptyFilter        = errs.Errorf(errs.EINVALID, "filter object is required and cannot be empty")
)

// Field names of the movies collection. Queries and updates must use these
// exact names, including the dotted paths into embedded documents.
const (
	FieldID         = "_id"
	FieldTitle      = "title"
	FieldYear       = "year"
	FieldPlot       = "plot"
	FieldFullPlot   = "fullplot"
	FieldReleased   = "released"
	FieldRuntime    = "runtime"
	FieldPoster     = "poster"
	FieldGenres     = "genres"
	FieldDirectors  = "directors"
	FieldWriters    = "writers"
	FieldCast       = "cast"
	FieldCountries  = "countries"
	FieldLanguages  = "languages"
	FieldRated      = "rated"
	FieldAwards     = "awards"
	FieldIMDB       = "imdb"
	FieldIMDBRating = "imdb.rating"
	FieldIMDBVotes  = "imdb.votes"
	FieldTomatoes   = "tomatoes"
	FieldMetacritic = "metacritic"
	FieldType       = "type"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

type Movie struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Year       int        `json:"year,omitempty"`
	Plot       string     `json:"plot,omitempty"`
	FullPlot   string     `json:"fullplot,omitempty"`
	Released   *time.Time `json:"released,omitempty"`
	Runtime    int        `json:"runtime,omitempty"`
	Poster     string     `json:"poster,omitempty"`
	Genres     []string   `json:"genres,omitempty"`
	Directors  []string   `json:"directors,omitempty"`
	Writers    []string   `json:"writers,omitempty"`
	Cast       []string   `json:"cast,omitempty"`
	Countries  []string   `json:"countries,omitempty"`
	Languages  []string   `json:"languages,omitempty"`
	Rated      string     `json:"rated,omitempty"`
	Awards     *Awards    `json:"awards,omitempty"`
	IMDB       *IMDB      `json:"imdb,omitempty"`
	Tomatoes   *Tomatoes  `json:"tomatoes,omitempty"`
	Metacritic int        `json:"metacritic,omitempty"`
	Type       string     `json:"type,omitempty"`
}

type Awards struct {
	Wins        int    `json:"wins"`
	Nominations int    `json:"nominations"`
	Text        string `json:"text,omitempty"`
}

type IMDB struct {
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
	ID     int     `json:"id,omitempty"`
}

type Tomatoes struct {
	Viewer      *TomatoesScore `json:"viewer,omitempty"`
	Critic      *TomatoesScore `json:"critic,omitempty"`
	Fresh       int            `json:"fresh,omitempty"`
	Rotten      int            `json:"rotten,omitempty"`
	Production  string         `json:"production,omitempty"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
}

type TomatoesScore struct {
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"numReviews"`
	Meter      int     `json:"meter,omitempty"`
}

// CreateRequest holds the fields accepted when inserting a movie.
type CreateRequest struct {
	Title     string
	Year      int
	Plot      string
	FullPlot  string
	Genres    []string
	Directors []string
	Writers   []string
	Cast      []string
	Countries []string
	Languages []string
	Rated     string
	Runtime   int
	Poster    string
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

func (r CreateRequest) ToMovie() Movie {
	return Movie{
		Title:     r.Title,
		Year:      r.Year,
		Plot:      r.Plot,
		FullPlot:  r.FullPlot,
		Genres:    r.Genres,
		Directors: r.Directors,
		Writers:   r.Writers,
		Cast:      r.Cast,
		Countries: r.Countries,
		Languages: r.Languages,
		Rated:     r.Rated,
		Runtime:   r.Runtime,
		Poster:    r.Poster,
	}
}

// ValidateID reports whether id is a 24 character hex object identifier.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

type BatchInsertResult struct {
	InsertedCount int      `json:"insertedCount"`
	InsertedIDs   []string `json:"insertedIds"`
}

type BatchUpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

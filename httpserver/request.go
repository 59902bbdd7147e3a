package httpserver

import (
	"mflix/movie"
)

type CreateMovieRequest struct {
	Title     string   `json:"title" validate:"required,notblank,max=500"`
	Year      int      `json:"year" validate:"omitempty,gte=1800,lte=2100"`
	Plot      string   `json:"plot"`
	FullPlot  string   `json:"fullplot"`
	Genres    []string `json:"genres" validate:"omitempty,dive,notblank"`
	Directors []string `json:"directors"`
	Writers   []string `json:"writers"`
	Cast      []string `json:"cast"`
	Countries []string `json:"countries"`
	Languages []string `json:"languages"`
	Rated     string   `json:"rated"`
	Runtime   int      `json:"runtime" validate:"gte=0"`
	Poster    string   `json:"poster" validate:"omitempty,url"`
}

func (r CreateMovieRequest) ToCreateRequest() movie.CreateRequest {
	return movie.CreateRequest{
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

// UpdateMovieRequest is a partial update. Absent and null fields are left
// unchanged.
type UpdateMovieRequest struct {
	Title      *string  `json:"title" validate:"omitempty,notblank,max=500"`
	Year       *int     `json:"year" validate:"omitempty,gte=1800,lte=2100"`
	Plot       *string  `json:"plot"`
	FullPlot   *string  `json:"fullplot"`
	Genres     []string `json:"genres"`
	Directors  []string `json:"directors"`
	Writers    []string `json:"writers"`
	Cast       []string `json:"cast"`
	Countries  []string `json:"countries"`
	Languages  []string `json:"languages"`
	Rated      *string  `json:"rated"`
	Runtime    *int     `json:"runtime" validate:"omitempty,gte=0"`
	Poster     *string  `json:"poster"`
	IMDBRating *float64 `json:"imdbRating" validate:"omitempty,gte=0,lte=10"`
	IMDBVotes  *int     `json:"imdbVotes" validate:"omitempty,gte=0"`
}

func (r UpdateMovieRequest) ToUpdateRequest() movie.UpdateRequest {
	return movie.UpdateRequest{
		Title:      r.Title,
		Year:       r.Year,
		Plot:       r.Plot,
		FullPlot:   r.FullPlot,
		Genres:     r.Genres,
		Directors:  r.Directors,
		Writers:    r.Writers,
		Cast:       r.Cast,
		Countries:  r.Countries,
		Languages:  r.Languages,
		Rated:      r.Rated,
		Runtime:    r.Runtime,
		Poster:     r.Poster,
		IMDBRating: r.IMDBRating,
		IMDBVotes:  r.IMDBVotes,
	}
}

type BatchUpdateRequest struct {
	Filter map[string]any `json:"filter"`
	Update map[string]any `json:"update"`
}

type BatchDeleteRequest struct {
	Filter map[string]any `json:"filter"`
}

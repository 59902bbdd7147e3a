package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"mflix/errs"
	"mflix/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/aggregations/reportingByComments", s.handleReportByComments)
	g.GET("/movies/aggregations/reportingByYear", s.handleReportByYear)
	g.GET("/movies/aggregations/reportingByDirectors", s.handleReportByDirectors)
	g.GET("/movies/:id", s.handleGetMovie)
}

func (s *Server) RegisterPrivateMovieRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/movies", s.handleCreateMovie, m...)
	g.POST("/movies/batch", s.handleCreateMovies, m...)
	g.PATCH("/movies", s.handleUpdateMovies, m...)
	g.PATCH("/movies/:id", s.handleUpdateMovie, m...)
	g.DELETE("/movies", s.handleDeleteMovies, m...)
	g.DELETE("/movies/:id", s.handleDeleteMovie, m...)
	g.DELETE("/movies/:id/find-and-delete", s.handleFindAndDeleteMovie, m...)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Filter, sort and page movies
// @Tags movies
// @Produce json
// @Param q query string false "Full-text search over title and plot"
// @Param genre query string false "Genre, case-insensitive partial match"
// @Param year query int false "Release year"
// @Param minRating query number false "Minimum IMDb rating"
// @Param maxRating query number false "Maximum IMDb rating"
// @Param limit query int false "Max results (1-100), default 20"
// @Param skip query int false "Results to skip, default 0"
// @Param sortBy query string false "Sort field, default title"
// @Param sortOrder query string false "asc or desc, default asc"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	q := movie.SearchQuery{
		Q:         c.QueryParam("q"),
		Genre:     c.QueryParam("genre"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: strings.TrimSpace(c.QueryParam("sortOrder")),
	}

	var err error
	if q.Year, err = intParam(c, "year"); err != nil {
		return err
	}
	if q.MinRating, err = floatParam(c, "minRating"); err != nil {
		return err
	}
	if q.MaxRating, err = floatParam(c, "maxRating"); err != nil {
		return err
	}
	if q.Limit, err = intParam(c, "limit"); err != nil {
		return err
	}
	if q.Skip, err = intParam(c, "skip"); err != nil {
		return err
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req CreateMovieRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToCreateRequest())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, m)
}

// handleCreateMovies godoc
// @Summary Create Movies
// @Description Insert several movies at once
// @Tags movies
// @Accept json
// @Produce json
// @Param movies body []CreateMovieRequest true "Movies"
// @Success 201 {object} movie.BatchInsertResult
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/batch [post]
func (s *Server) handleCreateMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var reqs []CreateMovieRequest
	if err := bindBody(c, &reqs); err != nil {
		return err
	}

	creates := make([]movie.CreateRequest, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return errs.Errorf(errs.EINVALID, "movie at index %d: %s", i, errs.ErrorMessage(err))
		}
		creates[i] = reqs[i].ToCreateRequest()
	}

	result, err := s.MovieService.CreateMovies(c.Request().Context(), creates)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, result)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Set the provided fields, leaving the rest unchanged
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to update"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/{id} [patch]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req UpdateMovieRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovie(c.Request().Context(), c.Param("id"), req.ToUpdateRequest())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleUpdateMovies godoc
// @Summary Update Movies
// @Description Set fields on every movie matching an equality filter
// @Tags movies
// @Accept json
// @Produce json
// @Param body body BatchUpdateRequest true "Filter and update"
// @Success 200 {object} movie.BatchUpdateResult
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies [patch]
func (s *Server) handleUpdateMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req BatchUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := s.MovieService.UpdateMovies(c.Request().Context(), req.Filter, req.Update)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} movie.DeleteResult
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	result, err := s.MovieService.DeleteMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleDeleteMovies godoc
// @Summary Delete Movies
// @Description Delete every movie matching a non-empty equality filter
// @Tags movies
// @Accept json
// @Produce json
// @Param body body BatchDeleteRequest true "Filter"
// @Success 200 {object} movie.DeleteResult
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies [delete]
func (s *Server) handleDeleteMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req BatchDeleteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := s.MovieService.DeleteMovies(c.Request().Context(), req.Filter)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleFindAndDeleteMovie godoc
// @Summary Find And Delete Movie
// @Description Atomically delete a movie and return it
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/{id}/find-and-delete [delete]
func (s *Server) handleFindAndDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	m, err := s.MovieService.FindAndDeleteMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleReportByComments godoc
// @Summary Movies With Recent Comments
// @Tags reports
// @Produce json
// @Param limit query int false "Max movies (1-50), default 10"
// @Param movieId query string false "Restrict to one movie"
// @Success 200 {array} movie.MovieWithComments
// @Failure 400 {object} APIResponse
// @Router /api/movies/aggregations/reportingByComments [get]
func (s *Server) handleReportByComments(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	rows, err := s.MovieService.ReportByComments(c.Request().Context(), limit, strings.TrimSpace(c.QueryParam("movieId")))
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, rows)
}

// handleReportByYear godoc
// @Summary Movie Statistics By Year
// @Tags reports
// @Produce json
// @Success 200 {array} movie.YearStatistics
// @Router /api/movies/aggregations/reportingByYear [get]
func (s *Server) handleReportByYear(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	rows, err := s.MovieService.ReportByYear(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, rows)
}

// handleReportByDirectors godoc
// @Summary Top Directors
// @Tags reports
// @Produce json
// @Param limit query int false "Max directors (1-100), default 20"
// @Success 200 {array} movie.DirectorStatistics
// @Failure 400 {object} APIResponse
// @Router /api/movies/aggregations/reportingByDirectors [get]
func (s *Server) handleReportByDirectors(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	rows, err := s.MovieService.ReportByDirectors(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, rows)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Relevance search: phrase match on plots, fuzzy match on people
// @Tags movies
// @Produce json
// @Param plot query string false "Plot phrase"
// @Param fullplot query string false "Full plot phrase"
// @Param directors query string false "Director name"
// @Param writers query string false "Writer name"
// @Param cast query string false "Cast member name"
// @Param searchOperator query string false "must, should, mustNot or filter; default must"
// @Param limit query int false "Max results (1-100), default 20"
// @Param skip query int false "Results to skip, default 0"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	req := movie.SearchRequest{
		Plot:      c.QueryParam("plot"),
		FullPlot:  c.QueryParam("fullplot"),
		Directors: c.QueryParam("directors"),
		Writers:   c.QueryParam("writers"),
		Cast:      c.QueryParam("cast"),
		Operator:  c.QueryParam("searchOperator"),
	}

	var err error
	if req.Limit, err = intParam(c, "limit"); err != nil {
		return err
	}
	if req.Skip, err = intParam(c, "skip"); err != nil {
		return err
	}

	movies, err := s.MovieService.SearchMovies(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

func bindBody(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	return nil
}

func intParam(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "%s must be an integer", name)
	}
	return &v, nil
}

func floatParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "%s must be a number", name)
	}
	return &v, nil
}

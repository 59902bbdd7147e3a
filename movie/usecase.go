package movie

import (
	"context"
	"strings"

	"mflix/errs"
)

type Service interface {
	ListMovies(ctx context.Context, q SearchQuery) ([]Movie, error)
	GetMovie(ctx context.Context, id string) (Movie, error)
	CreateMovie(ctx context.Context, req CreateRequest) (Movie, error)
	CreateMovies(ctx context.Context, reqs []CreateRequest) (BatchInsertResult, error)
	UpdateMovie(ctx context.Context, id string, req UpdateRequest) (Movie, error)
	UpdateMovies(ctx context.Context, filter, update map[string]any) (BatchUpdateResult, error)
	DeleteMovie(ctx context.Context, id string) (DeleteResult, error)
	DeleteMovies(ctx context.Context, filter map[string]any) (DeleteResult, error)
	FindAndDeleteMovie(ctx context.Context, id string) (Movie, error)
	ReportByComments(ctx context.Context, limit *int, movieID string) ([]MovieWithComments, error)
	ReportByYear(ctx context.Context) ([]YearStatistics, error)
	ReportByDirectors(ctx context.Context, limit *int) ([]DirectorStatistics, error)
	SearchMovies(ctx context.Context, req SearchRequest) ([]Movie, error)
}

type Repository interface {
	Find(ctx context.Context, q SearchQuery) ([]Movie, error)
	GetByID(ctx context.Context, id string) (Movie, error)
	Insert(ctx context.Context, m Movie) (Movie, error)
	InsertMany(ctx context.Context, movies []Movie) ([]string, error)
	Update(ctx context.Context, id string, req UpdateRequest) error
	UpdateMany(ctx context.Context, filter, update map[string]any) (BatchUpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteMany(ctx context.Context, filter map[string]any) (int64, error)
	FindOneAndDelete(ctx context.Context, id string) (Movie, error)
	MoviesWithRecentComments(ctx context.Context, limit int, movieID string) ([]MovieWithComments, error)
	StatisticsByYear(ctx context.Context) ([]YearStatistics, error)
	TopDirectors(ctx context.Context, limit int) ([]DirectorStatistics, error)
	Search(ctx context.Context, req SearchRequest) ([]Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListMovies(ctx context.Context, q SearchQuery) ([]Movie, error) {
	return uc.r.Find(ctx, q)
}

func (uc *Usecase) GetMovie(ctx context.Context, id string) (Movie, error) {
	if err := ValidateID(id); err != nil {
		return Movie{}, err
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) CreateMovie(ctx context.Context, req CreateRequest) (Movie, error) {
	if err := req.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Insert(ctx, req.ToMovie())
}

func (uc *Usecase) CreateMovies(ctx context.Context, reqs []CreateRequest) (BatchInsertResult, error) {
	if len(reqs) == 0 {
		return BatchInsertResult{}, ErrEmptyBatch
	}

	movies := make([]Movie, len(reqs))
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			return BatchInsertResult{}, errs.Errorf(errs.EINVALID, "movie at index %d: %s", i, errs.ErrorMessage(err))
		}
		movies[i] = req.ToMovie()
	}

	ids, err := uc.r.InsertMany(ctx, movies)
	if err != nil {
		return BatchInsertResult{}, err
	}
	return BatchInsertResult{
		InsertedCount: len(ids),
		InsertedIDs:   ids,
	}, nil
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id string, req UpdateRequest) (Movie, error) {
	if err := ValidateID(id); err != nil {
		return Movie{}, err
	}
	if req.IsEmpty() {
		return Movie{}, ErrInvalidUpdate
	}
	if err := uc.r.Update(ctx, id, req); err != nil {
		return Movie{}, err
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateMovies(ctx context.Context, filter, update map[string]any) (BatchUpdateResult, error) {
	if filter == nil || update == nil {
		return BatchUpdateResult{}, ErrBatchUpdateInvalid
	}
	if len(update) == 0 {
		return BatchUpdateResult{}, ErrEmptyUpdate
	}
	return uc.r.UpdateMany(ctx, filter, update)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id string) (DeleteResult, error) {
	if err := ValidateID(id); err != nil {
		return DeleteResult{}, err
	}
	n, err := uc.r.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if n == 0 {
		return DeleteResult{}, ErrMovieNotFound
	}
	return DeleteResult{DeletedCount: n}, nil
}

func (uc *Usecase) DeleteMovies(ctx context.Context, filter map[string]any) (DeleteResult, error) {
	if len(filter) == 0 {
		return DeleteResult{}, ErrEmptyFilter
	}
	n, err := uc.r.DeleteMany(ctx, filter)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: n}, nil
}

func (uc *Usecase) FindAndDeleteMovie(ctx context.Context, id string) (Movie, error) {
	if err := ValidateID(id); err != nil {
		return Movie{}, err
	}
	return uc.r.FindOneAndDelete(ctx, id)
}

func (uc *Usecase) ReportByComments(ctx context.Context, limit *int, movieID string) ([]MovieWithComments, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID != "" {
		if err := ValidateID(movieID); err != nil {
			return nil, err
		}
	}
	return uc.r.MoviesWithRecentComments(ctx, CommentsReportLimit(limit), movieID)
}

func (uc *Usecase) ReportByYear(ctx context.Context) ([]YearStatistics, error) {
	return uc.r.StatisticsByYear(ctx)
}

func (uc *Usecase) ReportByDirectors(ctx context.Context, limit *int) ([]DirectorStatistics, error) {
	return uc.r.TopDirectors(ctx, DirectorsReportLimit(limit))
}

func (uc *Usecase) SearchMovies(ctx context.Context, req SearchRequest) ([]Movie, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return uc.r.Search(ctx, req)
}

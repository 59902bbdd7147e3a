package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mflix/movie"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MovieDocument is the stored shape of a movie.
type MovieDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Year       looseInt           `bson:"year,omitempty"`
	Plot       string             `bson:"plot,omitempty"`
	FullPlot   string             `bson:"fullplot,omitempty"`
	Released   *time.Time         `bson:"released,omitempty"`
	Runtime    looseInt           `bson:"runtime,omitempty"`
	Poster     string             `bson:"poster,omitempty"`
	Genres     []string           `bson:"genres,omitempty"`
	Directors  []string           `bson:"directors,omitempty"`
	Writers    []string           `bson:"writers,omitempty"`
	Cast       []string           `bson:"cast,omitempty"`
	Countries  []string           `bson:"countries,omitempty"`
	Languages  []string           `bson:"languages,omitempty"`
	Rated      string             `bson:"rated,omitempty"`
	Awards     *AwardsDocument    `bson:"awards,omitempty"`
	IMDB       *IMDBDocument      `bson:"imdb,omitempty"`
	Tomatoes   *TomatoesDocument  `bson:"tomatoes,omitempty"`
	Metacritic looseInt           `bson:"metacritic,omitempty"`
	Type       string             `bson:"type,omitempty"`
}

type AwardsDocument struct {
	Wins        int    `bson:"wins"`
	Nominations int    `bson:"nominations"`
	Text        string `bson:"text,omitempty"`
}

type IMDBDocument struct {
	Rating looseFloat `bson:"rating"`
	Votes  looseInt   `bson:"votes"`
	ID     looseInt   `bson:"id,omitempty"`
}

type TomatoesDocument struct {
	Viewer      *TomatoesScoreDocument `bson:"viewer,omitempty"`
	Critic      *TomatoesScoreDocument `bson:"critic,omitempty"`
	Fresh       looseInt               `bson:"fresh,omitempty"`
	Rotten      looseInt               `bson:"rotten,omitempty"`
	Production  string                 `bson:"production,omitempty"`
	LastUpdated *time.Time             `bson:"lastUpdated,omitempty"`
}

type TomatoesScoreDocument struct {
	Rating     looseFloat `bson:"rating"`
	NumReviews looseInt   `bson:"numReviews"`
	Meter      looseInt   `bson:"meter,omitempty"`
}

// MovieRepository implements movie.Repository on top of the movies and
// comments collections.
type MovieRepository struct {
	movies      *mongo.Collection
	comments    *mongo.Collection
	searchIndex string
}

// NewMovieRepository creates a movie repository. searchIndex names the
// Atlas Search index used by Search.
func NewMovieRepository(db *mongo.Database, searchIndex string) *MovieRepository {
	return &MovieRepository{
		movies:      db.Collection(MoviesCollection),
		comments:    db.Collection(CommentsCollection),
		searchIndex: searchIndex,
	}
}

func (r *MovieRepository) Find(ctx context.Context, q movie.SearchQuery) ([]movie.Movie, error) {
	fq := BuildFindQuery(q)

	cursor, err := r.movies.Find(ctx, fq.Filter, fq.Options())
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movies: %w", err)
	}
	return decodeMovies(ctx, cursor)
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	oid, err := objectID(id)
	if err != nil {
		return movie.Movie{}, err
	}

	var doc MovieDocument
	err = r.movies.FindOne(ctx, bson.D{{Key: movie.FieldID, Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	if err != nil {
		return movie.Movie{}, fmt.Errorf("mongodb: find movie: %w", err)
	}
	return doc.toMovie(), nil
}

func (r *MovieRepository) Insert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	doc := toMovieDocument(m)
	doc.ID = primitive.NewObjectID()

	if _, err := r.movies.InsertOne(ctx, doc); err != nil {
		return movie.Movie{}, fmt.Errorf("mongodb: insert movie: %w", err)
	}
	return doc.toMovie(), nil
}

func (r *MovieRepository) InsertMany(ctx context.Context, movies []movie.Movie) ([]string, error) {
	docs := make([]interface{}, len(movies))
	ids := make([]string, len(movies))
	for i, m := range movies {
		doc := toMovieDocument(m)
		doc.ID = primitive.NewObjectID()
		docs[i] = doc
		ids[i] = doc.ID.Hex()
	}

	if _, err := r.movies.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("mongodb: insert movies: %w", err)
	}
	return ids, nil
}

func (r *MovieRepository) Update(ctx context.Context, id string, req movie.UpdateRequest) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update, err := BuildUpdate(req)
	if err != nil {
		return err
	}

	res, err := r.movies.UpdateOne(ctx, bson.D{{Key: movie.FieldID, Value: oid}}, update)
	if err != nil {
		return fmt.Errorf("mongodb: update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) UpdateMany(ctx context.Context, filter, update map[string]any) (movie.BatchUpdateResult, error) {
	res, err := r.movies.UpdateMany(ctx, equalityFilter(filter), setDocument(update))
	if err != nil {
		return movie.BatchUpdateResult{}, fmt.Errorf("mongodb: update movies: %w", err)
	}
	return movie.BatchUpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.movies.DeleteOne(ctx, bson.D{{Key: movie.FieldID, Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("mongodb: delete movie: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MovieRepository) DeleteMany(ctx context.Context, filter map[string]any) (int64, error) {
	res, err := r.movies.DeleteMany(ctx, equalityFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("mongodb: delete movies: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MovieRepository) FindOneAndDelete(ctx context.Context, id string) (movie.Movie, error) {
	oid, err := objectID(id)
	if err != nil {
		return movie.Movie{}, err
	}

	var doc MovieDocument
	err = r.movies.FindOneAndDelete(ctx, bson.D{{Key: movie.FieldID, Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	if err != nil {
		return movie.Movie{}, fmt.Errorf("mongodb: find and delete movie: %w", err)
	}
	return doc.toMovie(), nil
}

type commentInfoRow struct {
	ID    primitive.ObjectID `bson:"id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Text  string             `bson:"text"`
	Date  time.Time          `bson:"date"`
}

type movieWithCommentsRow struct {
	ID                    primitive.ObjectID `bson:"_id"`
	Title                 string             `bson:"title"`
	Year                  looseInt           `bson:"year"`
	Plot                  string             `bson:"plot"`
	Poster                string             `bson:"poster"`
	Genres                []string           `bson:"genres"`
	IMDBRating            *float64           `bson:"imdbRating"`
	RecentComments        []commentInfoRow   `bson:"recentComments"`
	TotalComments         int                `bson:"totalComments"`
	MostRecentCommentDate *time.Time         `bson:"mostRecentCommentDate"`
}

func (r *MovieRepository) MoviesWithRecentComments(ctx context.Context, limit int, movieID string) ([]movie.MovieWithComments, error) {
	var filterID *primitive.ObjectID
	if movieID != "" {
		oid, err := objectID(movieID)
		if err != nil {
			return nil, err
		}
		filterID = &oid
	}

	var rows []movieWithCommentsRow
	if err := r.aggregate(ctx, recentCommentsPipeline(limit, filterID), &rows); err != nil {
		return nil, fmt.Errorf("mongodb: report by comments: %w", err)
	}

	results := make([]movie.MovieWithComments, len(rows))
	for i, row := range rows {
		comments := make([]movie.CommentInfo, len(row.RecentComments))
		for j, c := range row.RecentComments {
			comments[j] = movie.CommentInfo{
				ID:    c.ID.Hex(),
				Name:  c.Name,
				Email: c.Email,
				Text:  c.Text,
				Date:  c.Date,
			}
		}
		results[i] = movie.MovieWithComments{
			ID:                    row.ID.Hex(),
			Title:                 row.Title,
			Year:                  int(row.Year),
			Plot:                  row.Plot,
			Poster:                row.Poster,
			Genres:                row.Genres,
			RecentComments:        comments,
			TotalComments:         row.TotalComments,
			MostRecentCommentDate: row.MostRecentCommentDate,
		}
		if row.IMDBRating != nil {
			results[i].IMDBRating = *row.IMDBRating
		}
	}
	return results, nil
}

func (r *MovieRepository) StatisticsByYear(ctx context.Context) ([]movie.YearStatistics, error) {
	var rows []struct {
		Year          int     `bson:"year"`
		MovieCount    int     `bson:"movieCount"`
		AverageRating float64 `bson:"averageRating"`
		HighestRating float64 `bson:"highestRating"`
		LowestRating  float64 `bson:"lowestRating"`
		TotalVotes    int64   `bson:"totalVotes"`
	}
	if err := r.aggregate(ctx, yearStatisticsPipeline(), &rows); err != nil {
		return nil, fmt.Errorf("mongodb: report by year: %w", err)
	}

	results := make([]movie.YearStatistics, len(rows))
	for i, row := range rows {
		results[i] = movie.YearStatistics(row)
	}
	return results, nil
}

func (r *MovieRepository) TopDirectors(ctx context.Context, limit int) ([]movie.DirectorStatistics, error) {
	var rows []struct {
		Director      string  `bson:"director"`
		MovieCount    int     `bson:"movieCount"`
		AverageRating float64 `bson:"averageRating"`
	}
	if err := r.aggregate(ctx, topDirectorsPipeline(limit), &rows); err != nil {
		return nil, fmt.Errorf("mongodb: report by directors: %w", err)
	}

	results := make([]movie.DirectorStatistics, len(rows))
	for i, row := range rows {
		results[i] = movie.DirectorStatistics(row)
	}
	return results, nil
}

func (r *MovieRepository) Search(ctx context.Context, req movie.SearchRequest) ([]movie.Movie, error) {
	cursor, err := r.movies.Aggregate(ctx, BuildSearchPipeline(req, r.searchIndex))
	if err != nil {
		return nil, fmt.Errorf("mongodb: search movies: %w", err)
	}
	return decodeMovies(ctx, cursor)
}

func (r *MovieRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.movies.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, results)
}

func decodeMovies(ctx context.Context, cursor *mongo.Cursor) ([]movie.Movie, error) {
	defer cursor.Close(ctx)

	movies := []movie.Movie{}
	for cursor.Next(ctx) {
		var doc MovieDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb: decode movie: %w", err)
		}
		movies = append(movies, doc.toMovie())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongodb: cursor: %w", err)
	}
	return movies, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, movie.ErrInvalidID
	}
	return oid, nil
}

func toMovieDocument(m movie.Movie) MovieDocument {
	doc := MovieDocument{
		Title:      m.Title,
		Year:       looseInt(m.Year),
		Plot:       m.Plot,
		FullPlot:   m.FullPlot,
		Released:   m.Released,
		Runtime:    looseInt(m.Runtime),
		Poster:     m.Poster,
		Genres:     m.Genres,
		Directors:  m.Directors,
		Writers:    m.Writers,
		Cast:       m.Cast,
		Countries:  m.Countries,
		Languages:  m.Languages,
		Rated:      m.Rated,
		Metacritic: looseInt(m.Metacritic),
		Type:       m.Type,
	}
	if m.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(m.ID); err == nil {
			doc.ID = oid
		}
	}
	if m.Awards != nil {
		doc.Awards = &AwardsDocument{Wins: m.Awards.Wins, Nominations: m.Awards.Nominations, Text: m.Awards.Text}
	}
	if m.IMDB != nil {
		doc.IMDB = &IMDBDocument{
			Rating: looseFloat(m.IMDB.Rating),
			Votes:  looseInt(m.IMDB.Votes),
			ID:     looseInt(m.IMDB.ID),
		}
	}
	if m.Tomatoes != nil {
		doc.Tomatoes = &TomatoesDocument{
			Viewer:      toScoreDocument(m.Tomatoes.Viewer),
			Critic:      toScoreDocument(m.Tomatoes.Critic),
			Fresh:       looseInt(m.Tomatoes.Fresh),
			Rotten:      looseInt(m.Tomatoes.Rotten),
			Production:  m.Tomatoes.Production,
			LastUpdated: m.Tomatoes.LastUpdated,
		}
	}
	return doc
}

func (d MovieDocument) toMovie() movie.Movie {
	m := movie.Movie{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Year:       int(d.Year),
		Plot:       d.Plot,
		FullPlot:   d.FullPlot,
		Released:   d.Released,
		Runtime:    int(d.Runtime),
		Poster:     d.Poster,
		Genres:     d.Genres,
		Directors:  d.Directors,
		Writers:    d.Writers,
		Cast:       d.Cast,
		Countries:  d.Countries,
		Languages:  d.Languages,
		Rated:      d.Rated,
		Metacritic: int(d.Metacritic),
		Type:       d.Type,
	}
	if d.Awards != nil {
		m.Awards = &movie.Awards{Wins: d.Awards.Wins, Nominations: d.Awards.Nominations, Text: d.Awards.Text}
	}
	if d.IMDB != nil {
		m.IMDB = &movie.IMDB{
			Rating: float64(d.IMDB.Rating),
			Votes:  int(d.IMDB.Votes),
			ID:     int(d.IMDB.ID),
		}
	}
	if d.Tomatoes != nil {
		m.Tomatoes = &movie.Tomatoes{
			Viewer:      toScore(d.Tomatoes.Viewer),
			Critic:      toScore(d.Tomatoes.Critic),
			Fresh:       int(d.Tomatoes.Fresh),
			Rotten:      int(d.Tomatoes.Rotten),
			Production:  d.Tomatoes.Production,
			LastUpdated: d.Tomatoes.LastUpdated,
		}
	}
	return m
}

func toScoreDocument(s *movie.TomatoesScore) *TomatoesScoreDocument {
	if s == nil {
		return nil
	}
	return &TomatoesScoreDocument{
		Rating:     looseFloat(s.Rating),
		NumReviews: looseInt(s.NumReviews),
		Meter:      looseInt(s.Meter),
	}
}

func toScore(s *TomatoesScoreDocument) *movie.TomatoesScore {
	if s == nil {
		return nil
	}
	return &movie.TomatoesScore{
		Rating:     float64(s.Rating),
		NumReviews: int(s.NumReviews),
		Meter:      int(s.Meter),
	}
}

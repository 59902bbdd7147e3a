// nolint: funlen
package mongodb_test

import (
	"context"
	"testing"
	"time"

	"mflix/mongodb"
	"mflix/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMovieRepository_Find(t *testing.T) {
	// Arrange - Setup shared database container and connection
	db := CreateConnection(t, "movie_find_test")
	_, err := mongodb.EnsureIndexes(context.Background(), db)
	require.NoError(t, err)

	repo := mongodb.NewMovieRepository(db, "movieSearchIndex")
	cleanupMovies(t, db)
	mustInsertMovies(t, repo, []movie.Movie{
		{Title: "Low", Year: 1998, Genres: []string{"Drama"}, IMDB: &movie.IMDB{Rating: 6.9}},
		{Title: "Lower Bound", Year: 1998, Genres: []string{"Drama", "War"}, IMDB: &movie.IMDB{Rating: 7.0}},
		{Title: "Middle", Year: 2001, Genres: []string{"Comedy"}, IMDB: &movie.IMDB{Rating: 8.5}},
		{Title: "Upper Bound", Year: 1998, Genres: []string{"Melodrama"}, IMDB: &movie.IMDB{Rating: 9.0}},
		{Title: "High", Year: 2010, Genres: []string{"Action"}, IMDB: &movie.IMDB{Rating: 9.1}},
		{Title: "Space Odyssey", Year: 1968, Plot: "A voyage to Jupiter", Genres: []string{"Sci-Fi"}},
	})

	t.Run("rating range is inclusive", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{
			MinRating: floatPtr(7.0),
			MaxRating: floatPtr(9.0),
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Lower Bound", "Middle", "Upper Bound"}, titles(movies))
	})

	t.Run("genre matches case-insensitive substrings", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{Genre: "dra"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Low", "Lower Bound", "Upper Bound"}, titles(movies))
	})

	t.Run("criteria are combined", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{
			Genre:     "drama",
			Year:      intPtr(1998),
			MinRating: floatPtr(7.0),
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Lower Bound", "Upper Bound"}, titles(movies))
	})

	t.Run("text search uses the text index", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{Q: "jupiter"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Space Odyssey"}, titles(movies))
	})

	t.Run("sorts and pages", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{
			SortBy:    movie.FieldYear,
			SortOrder: "desc",
			Limit:     intPtr(2),
			Skip:      intPtr(1),
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, 2001, movies[0].Year)
		assert.Equal(t, 1998, movies[1].Year)
	})

	t.Run("no matches returns an empty list", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{Year: intPtr(1850)})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})
}

func TestMovieRepository_CRUD(t *testing.T) {
	// Arrange - Setup shared database container and connection
	db := CreateConnection(t, "movie_crud_test")
	repo := mongodb.NewMovieRepository(db, "movieSearchIndex")

	t.Run("inserts and reads back a movie", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)

		// Act
		created, err := repo.Insert(context.Background(), movie.Movie{
			Title:  "The Matrix",
			Year:   1999,
			Genres: []string{"Action", "Sci-Fi"},
			IMDB:   &movie.IMDB{Rating: 8.7, Votes: 1000},
		})
		require.NoError(t, err)
		found, err := repo.GetByID(context.Background(), created.ID)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, movie.ValidateID(created.ID))
		assert.Equal(t, created, found)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		// Act
		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())

		// Assert
		assert.Equal(t, movie.ErrMovieNotFound, err)
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		// Act
		_, err := repo.GetByID(context.Background(), "not-an-id")

		// Assert
		assert.Equal(t, movie.ErrInvalidID, err)
	})

	t.Run("update only touches provided fields", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)
		created, err := repo.Insert(context.Background(), movie.Movie{
			Title: "Heat",
			Year:  1994,
			Plot:  "A heist",
			IMDB:  &movie.IMDB{Rating: 8.0, Votes: 500},
		})
		require.NoError(t, err)

		// Act
		err = repo.Update(context.Background(), created.ID, movie.UpdateRequest{
			Year:       intPtr(1995),
			IMDBRating: floatPtr(8.3),
		})
		require.NoError(t, err)
		updated, err := repo.GetByID(context.Background(), created.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Heat", updated.Title)
		assert.Equal(t, "A heist", updated.Plot)
		assert.Equal(t, 1995, updated.Year)
		assert.Equal(t, &movie.IMDB{Rating: 8.3, Votes: 500}, updated.IMDB)
	})

	t.Run("update of unknown movie is not found", func(t *testing.T) {
		// Act
		err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), movie.UpdateRequest{Year: intPtr(2000)})

		// Assert
		assert.Equal(t, movie.ErrMovieNotFound, err)
	})

	t.Run("batch insert, update and delete", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)

		// Act
		ids, err := repo.InsertMany(context.Background(), []movie.Movie{
			{Title: "One", Year: 2000, Rated: "PG"},
			{Title: "Two", Year: 2000, Rated: "PG"},
			{Title: "Three", Year: 2001, Rated: "R"},
		})
		require.NoError(t, err)
		updated, err := repo.UpdateMany(context.Background(),
			map[string]any{movie.FieldYear: 2000},
			map[string]any{movie.FieldRated: "PG-13"},
		)
		require.NoError(t, err)
		deleted, err := repo.DeleteMany(context.Background(), map[string]any{movie.FieldRated: "PG-13"})
		require.NoError(t, err)

		// Assert
		assert.Len(t, ids, 3)
		assert.Equal(t, movie.BatchUpdateResult{MatchedCount: 2, ModifiedCount: 2}, updated)
		assert.Equal(t, int64(2), deleted)
		remaining, err := repo.Find(context.Background(), movie.SearchQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Three"}, titles(remaining))
	})

	t.Run("batch filters convert hex ids", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)
		created, err := repo.Insert(context.Background(), movie.Movie{Title: "Target"})
		require.NoError(t, err)

		// Act
		deleted, err := repo.DeleteMany(context.Background(), map[string]any{movie.FieldID: created.ID})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})

	t.Run("delete reports the deleted count", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)
		created, err := repo.Insert(context.Background(), movie.Movie{Title: "Gone"})
		require.NoError(t, err)

		// Act
		first, err := repo.Delete(context.Background(), created.ID)
		require.NoError(t, err)
		second, err := repo.Delete(context.Background(), created.ID)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(0), second)
	})

	t.Run("find and delete returns the removed movie", func(t *testing.T) {
		// Arrange
		cleanupMovies(t, db)
		created, err := repo.Insert(context.Background(), movie.Movie{Title: "Vanishing Point", Year: 1971})
		require.NoError(t, err)

		// Act
		removed, err := repo.FindOneAndDelete(context.Background(), created.ID)
		require.NoError(t, err)
		_, again := repo.FindOneAndDelete(context.Background(), created.ID)

		// Assert
		assert.Equal(t, created, removed)
		assert.Equal(t, movie.ErrMovieNotFound, again)
	})
}

func TestMovieRepository_Reports(t *testing.T) {
	// Arrange - Setup shared database container and connection
	db := CreateConnection(t, "movie_report_test")
	repo := mongodb.NewMovieRepository(db, "movieSearchIndex")
	cleanupMovies(t, db)

	ids, err := repo.InsertMany(context.Background(), []movie.Movie{
		{Title: "Alpha", Year: 2000, Directors: []string{"Ann Lee"}, IMDB: &movie.IMDB{Rating: 7.0, Votes: 100}},
		{Title: "Beta", Year: 2000, Directors: []string{"Ann Lee", "Bo Kim"}, IMDB: &movie.IMDB{Rating: 8.0, Votes: 300}},
		{Title: "Gamma", Year: 2005, Directors: []string{"Bo Kim"}, IMDB: &movie.IMDB{Rating: 6.0, Votes: 50}},
		{Title: "Noise", Year: 1200, Directors: []string{"Ann Lee"}, IMDB: &movie.IMDB{Rating: 5.0, Votes: 1}},
	})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var comments []interface{}
	for i := 0; i < 7; i++ {
		comments = append(comments, bson.D{
			{Key: "movie_id", Value: mustObjectID(t, ids[0])},
			{Key: "name", Value: "Viewer"},
			{Key: "email", Value: "viewer@example.com"},
			{Key: "text", Value: "Great"},
			{Key: "date", Value: base.Add(time.Duration(i) * time.Hour)},
		})
	}
	comments = append(comments, bson.D{
		{Key: "movie_id", Value: mustObjectID(t, ids[1])},
		{Key: "name", Value: "Critic"},
		{Key: "email", Value: "critic@example.com"},
		{Key: "text", Value: "Fine"},
		{Key: "date", Value: base.Add(24 * time.Hour)},
	})
	_, err = db.Collection(mongodb.CommentsCollection).InsertMany(context.Background(), comments)
	require.NoError(t, err)

	t.Run("movies with recent comments", func(t *testing.T) {
		// Act
		rows, err := repo.MoviesWithRecentComments(context.Background(), 10, "")

		// Assert
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Beta", rows[0].Title)
		assert.Equal(t, 1, rows[0].TotalComments)
		assert.Equal(t, "Alpha", rows[1].Title)
		assert.Equal(t, 7, rows[1].TotalComments)
		assert.Len(t, rows[1].RecentComments, movie.RecentCommentsPerMovie)
		assert.Equal(t, base.Add(6*time.Hour), rows[1].RecentComments[0].Date.UTC())
		assert.Equal(t, 7.0, rows[1].IMDBRating)
	})

	t.Run("comments report for a single movie", func(t *testing.T) {
		// Act
		rows, err := repo.MoviesWithRecentComments(context.Background(), 10, ids[0])

		// Assert
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ids[0], rows[0].ID)
	})

	t.Run("statistics by year skip implausible years", func(t *testing.T) {
		// Act
		stats, err := repo.StatisticsByYear(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []movie.YearStatistics{
			{Year: 2005, MovieCount: 1, AverageRating: 6.0, HighestRating: 6.0, LowestRating: 6.0, TotalVotes: 50},
			{Year: 2000, MovieCount: 2, AverageRating: 7.5, HighestRating: 8.0, LowestRating: 7.0, TotalVotes: 400},
		}, stats)
	})

	t.Run("top directors", func(t *testing.T) {
		// Act
		stats, err := repo.TopDirectors(context.Background(), 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []movie.DirectorStatistics{
			{Director: "Ann Lee", MovieCount: 3, AverageRating: 6.67},
		}, stats)
	})
}

func TestEnsureIndexes(t *testing.T) {
	db := CreateConnection(t, "movie_index_test")

	created, err := mongodb.EnsureIndexes(context.Background(), db)
	require.NoError(t, err)
	assert.Contains(t, created, "movie_text")
	assert.Contains(t, created, "movie_id_1_date_-1")

	again, err := mongodb.EnsureIndexes(context.Background(), db)
	require.NoError(t, err)
	assert.NotContains(t, again, "movie_text")
}

func mustInsertMovies(t testing.TB, repo *mongodb.MovieRepository, movies []movie.Movie) {
	t.Helper()

	_, err := repo.InsertMany(context.Background(), movies)
	require.NoError(t, err)
}

func mustObjectID(t testing.TB, id string) primitive.ObjectID {
	t.Helper()

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	return oid
}

func cleanupMovies(t testing.TB, db *mongo.Database) {
	t.Helper()

	_, err := db.Collection(mongodb.MoviesCollection).DeleteMany(context.Background(), bson.D{})
	require.NoError(t, err)
	_, err = db.Collection(mongodb.CommentsCollection).DeleteMany(context.Background(), bson.D{})
	require.NoError(t, err)
}

func titles(movies []movie.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestMovieRepository_DirtyNumericFields(t *testing.T) {
	// Arrange - imported records sometimes carry strings where numbers belong
	db := CreateConnection(t, "movie_dirty_test")
	repo := mongodb.NewMovieRepository(db, "movieSearchIndex")
	cleanupMovies(t, db)

	dirtyID := primitive.NewObjectID()
	_, err := db.Collection(mongodb.MoviesCollection).InsertMany(context.Background(), []interface{}{
		bson.D{
			{Key: "_id", Value: dirtyID},
			{Key: "title", Value: "Dirty Year"},
			{Key: "year", Value: "2007è"},
			{Key: "runtime", Value: ""},
			{Key: "imdb", Value: bson.D{{Key: "rating", Value: ""}, {Key: "votes", Value: ""}, {Key: "id", Value: 472160}}},
			{Key: "tomatoes", Value: bson.D{{Key: "viewer", Value: bson.D{{Key: "rating", Value: ""}, {Key: "numReviews", Value: int64(12)}}}}},
		},
		bson.D{
			{Key: "title", Value: "Clean Year"},
			{Key: "year", Value: int32(2007)},
			{Key: "imdb", Value: bson.D{{Key: "rating", Value: int32(7)}, {Key: "votes", Value: int64(3200)}}},
		},
	})
	require.NoError(t, err)

	t.Run("find decodes every record", func(t *testing.T) {
		// Act
		movies, err := repo.Find(context.Background(), movie.SearchQuery{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Clean Year", "Dirty Year"}, titles(movies))
		assert.Equal(t, 2007, movies[0].Year)
		require.NotNil(t, movies[0].IMDB)
		assert.Equal(t, 7.0, movies[0].IMDB.Rating)
		assert.Equal(t, 3200, movies[0].IMDB.Votes)
	})

	t.Run("non numeric values read as zero", func(t *testing.T) {
		// Act
		found, err := repo.GetByID(context.Background(), dirtyID.Hex())

		// Assert
		require.NoError(t, err)
		assert.Zero(t, found.Year)
		assert.Zero(t, found.Runtime)
		require.NotNil(t, found.IMDB)
		assert.Zero(t, found.IMDB.Rating)
		assert.Zero(t, found.IMDB.Votes)
		assert.Equal(t, 472160, found.IMDB.ID)
		require.NotNil(t, found.Tomatoes)
		require.NotNil(t, found.Tomatoes.Viewer)
		assert.Zero(t, found.Tomatoes.Viewer.Rating)
		assert.Equal(t, 12, found.Tomatoes.Viewer.NumReviews)
	})

	t.Run("find and delete returns a dirty record", func(t *testing.T) {
		// Act
		deleted, err := repo.FindOneAndDelete(context.Background(), dirtyID.Hex())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Dirty Year", deleted.Title)
	})
}

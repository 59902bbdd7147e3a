package mongodb

import (
	"context"
	"fmt"

	"mflix/movie"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the movie queries rely on and returns
// the names of the indexes it created. A collection keeps at most one text
// index, so an existing one is left in place.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	movies := db.Collection(MoviesCollection)

	hasText, err := hasTextIndex(ctx, movies)
	if err != nil {
		return nil, err
	}

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: movie.FieldYear, Value: 1}}, Options: options.Index().SetName("year_1")},
		{Keys: bson.D{{Key: movie.FieldGenres, Value: 1}}, Options: options.Index().SetName("genres_1")},
		{Keys: bson.D{{Key: movie.FieldIMDBRating, Value: -1}}, Options: options.Index().SetName("imdb_rating_-1")},
	}
	if !hasText {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{
				{Key: movie.FieldTitle, Value: "text"},
				{Key: movie.FieldPlot, Value: "text"},
				{Key: movie.FieldFullPlot, Value: "text"},
			},
			Options: options.Index().SetName("movie_text"),
		})
	}

	created, err := movies.Indexes().CreateMany(ctx, models)
	if err != nil {
		return nil, fmt.Errorf("mongodb: create movie indexes: %w", err)
	}

	name, err := db.Collection(CommentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "movie_id", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetName("movie_id_1_date_-1"),
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb: create comment indexes: %w", err)
	}

	return append(created, name), nil
}

func hasTextIndex(ctx context.Context, coll *mongo.Collection) (bool, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return false, fmt.Errorf("mongodb: list indexes: %w", err)
	}

	var specs []bson.M
	if err := cursor.All(ctx, &specs); err != nil {
		return false, fmt.Errorf("mongodb: decode indexes: %w", err)
	}
	for _, spec := range specs {
		if _, ok := spec["textIndexVersion"]; ok {
			return true, nil
		}
	}
	return false, nil
}

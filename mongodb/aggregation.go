package mongodb

import (
	"mflix/movie"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Years outside this range are data-entry noise in the sample dataset.
const (
	minReportYear = 1800
	maxReportYear = 2100
)

// recentCommentsPipeline joins movies with their comments, newest first,
// keeping only movies that have at least one comment.
func recentCommentsPipeline(limit int, movieID *primitive.ObjectID) mongo.Pipeline {
	var pipeline mongo.Pipeline
	if movieID != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: movie.FieldID, Value: *movieID}}}})
	}

	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CommentsCollection},
			{Key: "let", Value: bson.D{{Key: "movieId", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$movie_id", "$$movieId"}},
				}}}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
			}},
			{Key: "as", Value: "comments"},
		}}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "comments.0", Value: bson.D{{Key: "$exists", Value: true}}}}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "totalComments", Value: bson.D{{Key: "$size", Value: "$comments"}}},
			{Key: "recentComments", Value: bson.D{{Key: "$slice", Value: bson.A{"$comments", movie.RecentCommentsPerMovie}}}},
			{Key: "mostRecentCommentDate", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$comments.date", 0}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "mostRecentCommentDate", Value: -1}}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "year", Value: 1},
			{Key: "plot", Value: 1},
			{Key: "poster", Value: 1},
			{Key: "genres", Value: 1},
			{Key: "imdbRating", Value: numericOrNull("$imdb.rating")},
			{Key: "recentComments", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$recentComments"},
				{Key: "as", Value: "c"},
				{Key: "in", Value: bson.D{
					{Key: "id", Value: "$$c._id"},
					{Key: "name", Value: "$$c.name"},
					{Key: "email", Value: "$$c.email"},
					{Key: "text", Value: "$$c.text"},
					{Key: "date", Value: "$$c.date"},
				}},
			}}}},
			{Key: "totalComments", Value: 1},
			{Key: "mostRecentCommentDate", Value: 1},
		}}},
	)
}

// yearStatisticsPipeline groups rated movies by release year, newest first.
func yearStatisticsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: movie.FieldYear, Value: bson.D{
				{Key: "$type", Value: "number"},
				{Key: "$gte", Value: minReportYear},
				{Key: "$lte", Value: maxReportYear},
			}},
			{Key: movie.FieldIMDBRating, Value: bson.D{{Key: "$type", Value: "number"}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$year"},
			{Key: "movieCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$imdb.rating"}}},
			{Key: "highestRating", Value: bson.D{{Key: "$max", Value: "$imdb.rating"}}},
			{Key: "lowestRating", Value: bson.D{{Key: "$min", Value: "$imdb.rating"}}},
			{Key: "totalVotes", Value: bson.D{{Key: "$sum", Value: "$imdb.votes"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "year", Value: "$_id"},
			{Key: "movieCount", Value: 1},
			{Key: "averageRating", Value: bson.D{{Key: "$round", Value: bson.A{"$averageRating", 2}}}},
			{Key: "highestRating", Value: 1},
			{Key: "lowestRating", Value: 1},
			{Key: "totalVotes", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: -1}}}},
	}
}

// topDirectorsPipeline ranks directors by number of rated movies.
func topDirectorsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: movie.FieldDirectors, Value: bson.D{
				{Key: "$exists", Value: true},
				{Key: "$ne", Value: bson.A{}},
			}},
			{Key: movie.FieldIMDBRating, Value: bson.D{{Key: "$type", Value: "number"}}},
		}}},
		{{Key: "$unwind", Value: "$directors"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$directors"},
			{Key: "movieCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$imdb.rating"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "movieCount", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "director", Value: "$_id"},
			{Key: "movieCount", Value: 1},
			{Key: "averageRating", Value: bson.D{{Key: "$round", Value: bson.A{"$averageRating", 2}}}},
		}}},
	}
}

func numericOrNull(path string) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: path},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: nil},
		{Key: "onNull", Value: nil},
	}}}
}

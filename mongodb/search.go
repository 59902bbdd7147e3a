package mongodb

import (
	"strings"

	"mflix/movie"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fuzzy matching applied to people fields.
const (
	fuzzyMaxEdits     = 1
	fuzzyPrefixLength = 5
)

// BuildSearchPipeline builds an Atlas Search pipeline over the given index.
// The request is expected to be validated.
func BuildSearchPipeline(req movie.SearchRequest, index string) mongo.Pipeline {
	var clauses bson.A

	phrase := func(path, query string) {
		if query = strings.TrimSpace(query); query != "" {
			clauses = append(clauses, bson.D{{Key: "phrase", Value: bson.D{
				{Key: "query", Value: query},
				{Key: "path", Value: path},
			}}})
		}
	}
	fuzzy := func(path, query string) {
		if query = strings.TrimSpace(query); query != "" {
			clauses = append(clauses, bson.D{{Key: "text", Value: bson.D{
				{Key: "query", Value: query},
				{Key: "path", Value: path},
				{Key: "fuzzy", Value: bson.D{
					{Key: "maxEdits", Value: fuzzyMaxEdits},
					{Key: "prefixLength", Value: fuzzyPrefixLength},
				}},
			}}})
		}
	}

	phrase(movie.FieldPlot, req.Plot)
	phrase(movie.FieldFullPlot, req.FullPlot)
	fuzzy(movie.FieldDirectors, req.Directors)
	fuzzy(movie.FieldWriters, req.Writers)
	fuzzy(movie.FieldCast, req.Cast)

	return mongo.Pipeline{
		{{Key: "$search", Value: bson.D{
			{Key: "index", Value: index},
			{Key: "compound", Value: bson.D{{Key: req.CompoundOperator(), Value: clauses}}},
		}}},
		{{Key: "$skip", Value: int64(req.PageSkip())}},
		{{Key: "$limit", Value: int64(req.PageLimit())}},
	}
}

package mongodb

import (
	"regexp"
	"sort"

	"mflix/movie"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindQuery is a find operation against the movies collection, ready to
// be executed. An empty Filter matches every document.
type FindQuery struct {
	Filter bson.D
	Sort   bson.D
	Skip   int64
	Limit  int64
}

func (q FindQuery) Options() *options.FindOptions {
	return options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
}

// BuildFindQuery translates a search query into filter, sort and page.
// Predicates are ANDed; criteria left empty add no predicate.
func BuildFindQuery(q movie.SearchQuery) FindQuery {
	filter := bson.D{}

	if text := q.Text(); text != "" {
		filter = append(filter, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: text}}})
	}

	if genre := q.GenreTerm(); genre != "" {
		filter = append(filter, bson.E{Key: movie.FieldGenres, Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(genre),
			Options: "i",
		}})
	}

	if q.Year != nil {
		filter = append(filter, bson.E{Key: movie.FieldYear, Value: *q.Year})
	}

	if q.MinRating != nil || q.MaxRating != nil {
		rating := bson.D{}
		if q.MinRating != nil {
			rating = append(rating, bson.E{Key: "$gte", Value: *q.MinRating})
		}
		if q.MaxRating != nil {
			rating = append(rating, bson.E{Key: "$lte", Value: *q.MaxRating})
		}
		filter = append(filter, bson.E{Key: movie.FieldIMDBRating, Value: rating})
	}

	direction := 1
	if q.Descending() {
		direction = -1
	}

	return FindQuery{
		Filter: filter,
		Sort:   bson.D{{Key: q.SortField(), Value: direction}},
		Skip:   int64(q.PageSkip()),
		Limit:  int64(q.PageLimit()),
	}
}

// BuildUpdate turns a sparse update into a $set of the provided fields.
func BuildUpdate(req movie.UpdateRequest) (bson.D, error) {
	changes, err := req.Changes()
	if err != nil {
		return nil, err
	}

	set := make(bson.D, 0, len(changes))
	for _, c := range changes {
		set = append(set, bson.E{Key: c.Field, Value: c.Value})
	}
	return bson.D{{Key: "$set", Value: set}}, nil
}

// equalityFilter matches documents whose fields equal every given value.
// Hex strings under _id are compared as object ids.
func equalityFilter(fields map[string]any) bson.D {
	filter := bson.D{}
	for _, key := range sortedKeys(fields) {
		value := fields[key]
		if key == movie.FieldID {
			if s, ok := value.(string); ok {
				if oid, err := primitive.ObjectIDFromHex(s); err == nil {
					value = oid
				}
			}
		}
		filter = append(filter, bson.E{Key: key, Value: value})
	}
	return filter
}

func setDocument(fields map[string]any) bson.D {
	set := make(bson.D, 0, len(fields))
	for _, key := range sortedKeys(fields) {
		set = append(set, bson.E{Key: key, Value: fields[key]})
	}
	return bson.D{{Key: "$set", Value: set}}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package movie

import "time"

const (
	DefaultCommentsReportLimit  = 10
	MaxCommentsReportLimit      = 50
	DefaultDirectorsReportLimit = 20
	MaxDirectorsReportLimit     = 100

	// RecentCommentsPerMovie caps the comments embedded in a comments report row.
	RecentCommentsPerMovie = 5
)

type MovieWithComments struct {
	ID                    string        `json:"_id"`
	Title                 string        `json:"title"`
	Year                  int           `json:"year,omitempty"`
	Plot                  string        `json:"plot,omitempty"`
	Poster                string        `json:"poster,omitempty"`
	Genres                []string      `json:"genres,omitempty"`
	IMDBRating            float64       `json:"imdbRating,omitempty"`
	RecentComments        []CommentInfo `json:"recentComments"`
	TotalComments         int           `json:"totalComments"`
	MostRecentCommentDate *time.Time    `json:"mostRecentCommentDate,omitempty"`
}

type CommentInfo struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`
}

type YearStatistics struct {
	Year          int     `json:"year"`
	MovieCount    int     `json:"movieCount"`
	AverageRating float64 `json:"averageRating"`
	HighestRating float64 `json:"highestRating"`
	LowestRating  float64 `json:"lowestRating"`
	TotalVotes    int64   `json:"totalVotes"`
}

type DirectorStatistics struct {
	Director      string  `json:"director"`
	MovieCount    int     `json:"movieCount"`
	AverageRating float64 `json:"averageRating"`
}

// CommentsReportLimit normalizes the row limit of the comments report.
func CommentsReportLimit(limit *int) int {
	if limit == nil {
		return DefaultCommentsReportLimit
	}
	return clamp(*limit, 1, MaxCommentsReportLimit)
}

// DirectorsReportLimit normalizes the row limit of the directors report.
func DirectorsReportLimit(limit *int) int {
	if limit == nil {
		return DefaultDirectorsReportLimit
	}
	return clamp(*limit, 1, MaxDirectorsReportLimit)
}

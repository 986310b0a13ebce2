package dataset

import (
	"encoding/json"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// Fallback returns a fresh copy of the built-in three-entry dataset used
// before loading completes or when loading fails.
func Fallback() []domain.MovieRecord {
	return []domain.MovieRecord{
		{
			Title:     domain.Ptr("Inception"),
			Year:      domain.Ptr("2010"),
			Director:  domain.Ptr("Christopher Nolan"),
			Genres:    json.RawMessage(`[{"name":"Action"},{"name":"Sci-Fi"}]`),
			Rating:    domain.Ptr(8.3),
			PosterURL: domain.Ptr("https://image.tmdb.org/t/p/w500/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg"),
			Votes:     domain.Ptr(int64(30000)),
			Overview:  domain.Ptr("A thief who steals corporate secrets through dream-sharing technology."),
		},
		{
			Title:     domain.Ptr("The Dark Knight"),
			Year:      domain.Ptr("2008"),
			Director:  domain.Ptr("Christopher Nolan"),
			Genres:    json.RawMessage(`[{"name":"Action"},{"name":"Crime"}]`),
			Rating:    domain.Ptr(8.5),
			PosterURL: domain.Ptr("https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg"),
			Votes:     domain.Ptr(int64(28000)),
			Overview:  domain.Ptr("Batman faces the Joker, a criminal mastermind."),
		},
		{
			Title:     domain.Ptr("Pulp Fiction"),
			Year:      domain.Ptr("1994"),
			Director:  domain.Ptr("Quentin Tarantino"),
			Genres:    json.RawMessage(`[{"name":"Crime"},{"name":"Drama"}]`),
			Rating:    domain.Ptr(8.9),
			PosterURL: domain.Ptr("https://image.tmdb.org/t/p/w500/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg"),
			Votes:     domain.Ptr(int64(22000)),
			Overview:  domain.Ptr("The lives of two mob hitmen, a boxer, and others intertwine."),
		},
	}
}

package tracker

import (
	"context"
	"sort"
	"strings"

	"github.com/seguido/seguido/pkg/storage"
)

// WatchStats aggregates a user's library.
type WatchStats struct {
	TotalShows      int                            `json:"totalShows"`
	ByState         map[storage.LifecycleState]int `json:"byState"`
	EpisodesWatched int                            `json:"episodesWatched"`
	MinutesWatched  int                            `json:"minutesWatched"`
	TopGenres       []GenreCount                   `json:"topGenres"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats computes watch statistics across the user's library. Minutes are an
// estimate from each show's average episode runtime; shows without a runtime
// contribute episodes but no minutes.
func (t *Tracker) Stats(ctx context.Context, userID string) (*WatchStats, error) {
	shows, err := t.ListShows(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &WatchStats{
		TotalShows: len(shows),
		ByState:    make(map[storage.LifecycleState]int),
	}
	genres := make(map[string]int)

	for _, show := range shows {
		stats.ByState[show.State]++

		l, err := show.Ledger()
		if err != nil {
			return nil, err
		}

		watched := l.TotalWatched()
		stats.EpisodesWatched += watched
		if show.AverageRuntime != nil {
			stats.MinutesWatched += watched * int(*show.AverageRuntime)
		}

		if show.Genres == nil {
			continue
		}
		for _, genre := range strings.Split(*show.Genres, ",") {
			genre = strings.TrimSpace(genre)
			if genre != "" {
				genres[genre]++
			}
		}
	}

	stats.TopGenres = make([]GenreCount, 0, len(genres))
	for genre, count := range genres {
		stats.TopGenres = append(stats.TopGenres, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(stats.TopGenres, func(i, j int) bool {
		if stats.TopGenres[i].Count != stats.TopGenres[j].Count {
			return stats.TopGenres[i].Count > stats.TopGenres[j].Count
		}
		return stats.TopGenres[i].Genre < stats.TopGenres[j].Genre
	})

	return stats, nil
}

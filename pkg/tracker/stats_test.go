package tracker

import (
	"context"
	"testing"

	"github.com/seguido/seguido/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	store := newTestStore(t)
	tr := newTestTracker(t, nil, store)
	ctx := context.Background()

	drama := "Drama, Crimen"
	comedy := "Comedia"
	runtime := int32(50)

	seed := []struct {
		title   string
		tmdbID  int64
		genres  *string
		watched string
		state   storage.LifecycleState
	}{
		{"La Casa", 1, &drama, `{"1":[1,2,3]}`, storage.StateWatching},
		{"El Barco", 2, &drama, `{"1":[1,2]}`, storage.StateFinished},
		{"Paquita", 3, &comedy, `{}`, storage.StatePending},
	}

	for _, s := range seed {
		show := storage.Show{}
		show.UserID = "tester"
		show.TmdbID = s.tmdbID
		show.Title = s.title
		show.Watched = s.watched
		show.Genres = s.genres
		show.AverageRuntime = &runtime

		id, err := store.CreateShow(ctx, show, storage.StatePending)
		require.NoError(t, err)
		if s.state != storage.StatePending {
			require.NoError(t, store.UpdateShowState(ctx, id, s.state))
		}
	}

	stats, err := tr.Stats(ctx, "tester")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalShows)
	assert.Equal(t, 5, stats.EpisodesWatched)
	assert.Equal(t, 250, stats.MinutesWatched)
	assert.Equal(t, 1, stats.ByState[storage.StateWatching])
	assert.Equal(t, 1, stats.ByState[storage.StateFinished])
	assert.Equal(t, 1, stats.ByState[storage.StatePending])

	require.Len(t, stats.TopGenres, 3)
	assert.Equal(t, GenreCount{Genre: "Crimen", Count: 2}, stats.TopGenres[0])
	assert.Equal(t, GenreCount{Genre: "Drama", Count: 2}, stats.TopGenres[1])
	assert.Equal(t, GenreCount{Genre: "Comedia", Count: 1}, stats.TopGenres[2])
}

package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seguido/seguido/pkg/tmdb"
	"github.com/seguido/seguido/pkg/tmdb/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestOfficialSeasons(t *testing.T) {
	seasons := []tmdb.SeasonSummary{
		{SeasonNumber: 0, Name: "Specials", EpisodeCount: 3},
		{SeasonNumber: 1, Name: "Temporada 1", EpisodeCount: 8},
		{SeasonNumber: 2, Name: "Especiales", EpisodeCount: 2},
		{SeasonNumber: 3, Name: "EXTRAS", EpisodeCount: 1},
		{SeasonNumber: 4, Name: "Temporada 4", EpisodeCount: 10},
	}

	official := officialSeasons(seasons)
	assert.Len(t, official, 2)
	assert.Equal(t, 1, official[0].SeasonNumber)
	assert.Equal(t, 4, official[1].SeasonNumber)
	assert.Equal(t, 18, declaredEpisodeTotal(official))
}

func TestCountAiredTerminalUsesDeclaredTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)
	// terminal shows never trigger season fetches
	client.EXPECT().SeasonDetails(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	tr := newTestTracker(t, client, nil)

	details := &tmdb.SeriesDetails{
		ID:     7,
		Status: "Ended",
		Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 0, Name: "Specials", EpisodeCount: 5},
			{SeasonNumber: 1, Name: "Season 1", EpisodeCount: 10},
			{SeasonNumber: 2, Name: "Season 2", EpisodeCount: 13},
		},
	}

	assert.Equal(t, 23, tr.countAired(context.Background(), details, testNow))
}

func TestCountAiredGatesOnAirDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)

	client.EXPECT().SeasonDetails(gomock.Any(), int64(7), 1).Return(&tmdb.SeasonDetails{
		SeasonNumber: 1,
		Episodes: []tmdb.Episode{
			{EpisodeNumber: 1, AirDate: "2024-05-01"},
			{EpisodeNumber: 2, AirDate: "2024-06-01"},
			{EpisodeNumber: 3, AirDate: "2024-07-01"},
			{EpisodeNumber: 4, AirDate: ""},
			{EpisodeNumber: 5, AirDate: "not-a-date"},
		},
	}, nil)

	tr := newTestTracker(t, client, nil)

	details := &tmdb.SeriesDetails{
		ID:     7,
		Status: "Returning Series",
		Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 1, Name: "Season 1", EpisodeCount: 5},
		},
	}

	// episodes airing today count, future and unscheduled ones do not
	assert.Equal(t, 2, tr.countAired(context.Background(), details, testNow))
}

func TestCountAiredSeasonFetchFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)

	client.EXPECT().SeasonDetails(gomock.Any(), int64(7), 1).Return(nil, errors.New("fetch failed"))
	client.EXPECT().SeasonDetails(gomock.Any(), int64(7), 2).Return(&tmdb.SeasonDetails{
		SeasonNumber: 2,
		Episodes: []tmdb.Episode{
			{EpisodeNumber: 1, AirDate: "2024-01-01"},
			{EpisodeNumber: 2, AirDate: "2024-01-08"},
		},
	}, nil)

	tr := newTestTracker(t, client, nil)

	details := &tmdb.SeriesDetails{
		ID:     7,
		Status: "Returning Series",
		Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 1, Name: "Season 1", EpisodeCount: 10},
			{SeasonNumber: 2, Name: "Season 2", EpisodeCount: 2},
		},
	}

	// the failed season contributes its declared count
	assert.Equal(t, 12, tr.countAired(context.Background(), details, testNow))
}

func TestSeasonDetailsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)

	client.EXPECT().SeasonDetails(gomock.Any(), int64(7), 1).Times(1).Return(&tmdb.SeasonDetails{
		SeasonNumber: 1,
		Episodes: []tmdb.Episode{
			{EpisodeNumber: 1, AirDate: "2024-01-01"},
		},
	}, nil)

	tr := newTestTracker(t, client, nil)

	details := &tmdb.SeriesDetails{
		ID:     7,
		Status: "Returning Series",
		Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 1, Name: "Season 1", EpisodeCount: 1},
		},
	}

	assert.Equal(t, 1, tr.countAired(context.Background(), details, testNow))
	assert.Equal(t, 1, tr.countAired(context.Background(), details, testNow))
}

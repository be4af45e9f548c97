package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "la casa", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "es-ES", r.URL.Query().Get("language"))

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"page":1,"total_pages":1,"total_results":1,"results":[{"id":42,"name":"La Casa","first_air_date":"2017-05-02","vote_average":8.2}]}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "test-key", WithLanguage("es-ES"))
	require.NoError(t, err)

	resp, err := client.SearchTV(context.Background(), "la casa")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(42), resp.Results[0].ID)
	assert.Equal(t, "La Casa", resp.Results[0].Name)
}

func TestSeriesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/42", r.URL.Path)

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"id": 42,
			"name": "La Casa",
			"status": "Returning Series",
			"number_of_episodes": 12,
			"episode_run_time": [45, 55],
			"genres": [{"id": 18, "name": "Drama"}],
			"seasons": [
				{"season_number": 0, "name": "Especiales", "episode_count": 2},
				{"season_number": 1, "name": "Parte 1", "episode_count": 12}
			]
		}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "test-key")
	require.NoError(t, err)

	details, err := client.SeriesDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Returning Series", details.Status)
	assert.Equal(t, 12, details.NumberOfEpisodes)
	require.Len(t, details.Seasons, 2)
	assert.Equal(t, "Especiales", details.Seasons[0].Name)
}

func TestSeasonDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/42/season/1", r.URL.Path)

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"season_number": 1,
			"name": "Parte 1",
			"episodes": [
				{"episode_number": 1, "name": "Efectuar lo acordado", "air_date": "2017-05-02"},
				{"episode_number": 2, "name": "Imprudencias letales", "air_date": ""}
			]
		}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "test-key")
	require.NoError(t, err)

	season, err := client.SeasonDetails(context.Background(), 42, 1)
	require.NoError(t, err)
	require.Len(t, season.Episodes, 2)
	assert.Equal(t, "2017-05-02", season.Episodes[0].AirDate)
	assert.Empty(t, season.Episodes[1].AirDate)
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(srv.URL, "bad-key")
	require.NoError(t, err)

	_, err = client.SeriesDetails(context.Background(), 42)
	assert.ErrorContains(t, err, "unexpected tmdb response status")
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", "key")
	assert.Error(t, err)
}

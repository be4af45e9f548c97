package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/storage/sqlite"
	"github.com/seguido/seguido/pkg/tmdb"
	"github.com/seguido/seguido/pkg/tmdb/mocks"
	"github.com/seguido/seguido/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, client tmdb.ClientInterface) (Server, *tracker.Tracker) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)

	tr := tracker.New(context.Background(), client, store, config.Tracker{
		User:          "tester",
		SweepThrottle: time.Millisecond,
		DrainTimeout:  5 * time.Second,
	})
	t.Cleanup(func() { tr.Close(context.Background()) })

	return New(zap.NewNop().Sugar(), tr, "tester"), tr
}

func drainQueue(t *testing.T, tr *tracker.Tracker) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tr.Queue().Drain(ctx))
}

func laCasaDetails() *tmdb.SeriesDetails {
	return &tmdb.SeriesDetails{
		ID:     42,
		Name:   "La Casa",
		Status: "Ended",
		Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 1, Name: "Parte 1", EpisodeCount: 3},
		},
	}
}

func TestServer_Healthz(t *testing.T) {
	s := Server{baseLogger: zap.NewNop().Sugar()}

	req, err := http.NewRequest("GET", "/healthz", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	s.Healthz().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("content-type"))

	var response GenericResponse
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response.Response)
}

func TestServer_AddShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)
	client.EXPECT().SeriesDetails(gomock.Any(), int64(42)).Times(1).Return(laCasaDetails(), nil)

	s, _ := newTestServer(t, client)

	body := bytes.NewBufferString(`{"tmdbId": 42}`)
	req := httptest.NewRequest("POST", "/api/v1/shows", body)
	rr := httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	// the same show again conflicts without another fetch
	req = httptest.NewRequest("POST", "/api/v1/shows", bytes.NewBufferString(`{"tmdbId": 42}`))
	rr = httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestServer_AddShowValidation(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/shows", bytes.NewBufferString(`{"tmdbId": 0}`))
	rr := httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("POST", "/api/v1/shows", bytes.NewBufferString(`not json`))
	rr = httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_GetShowNotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/api/v1/shows/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rr := httptest.NewRecorder()
	s.GetShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_WatchFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)
	client.EXPECT().SeriesDetails(gomock.Any(), int64(42)).Times(1).Return(laCasaDetails(), nil)

	s, tr := newTestServer(t, client)

	req := httptest.NewRequest("POST", "/api/v1/shows", bytes.NewBufferString(`{"tmdbId": 42}`))
	rr := httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		Response struct {
			ID int32 `json:"ID"`
		} `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotZero(t, created.Response.ID)
	id := strconv.Itoa(int(created.Response.ID))

	// rating before finishing conflicts
	req = httptest.NewRequest("POST", "/api/v1/shows/"+id+"/review", bytes.NewBufferString(`{"rating": 9}`))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rr = httptest.NewRecorder()
	s.ReviewShow().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// watch the whole season; the show is over, so it finishes
	req = httptest.NewRequest("PUT", "/api/v1/shows/"+id+"/season", bytes.NewBufferString(`{"season": 1, "episodes": 3, "watched": true}`))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rr = httptest.NewRecorder()
	s.SetSeason().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var season struct {
		Response tracker.WatchUpdate `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &season))
	assert.True(t, season.Response.ReviewPrompt)
	assert.Equal(t, 3, season.Response.TotalWatched)
	drainQueue(t, tr)

	// unwatch one episode
	req = httptest.NewRequest("PUT", "/api/v1/shows/"+id+"/episode", bytes.NewBufferString(`{"season": 1, "episode": 2}`))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rr = httptest.NewRecorder()
	s.ToggleEpisode().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var toggle struct {
		Response tracker.WatchUpdate `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toggle))
	assert.Equal(t, 2, toggle.Response.TotalWatched)
	assert.False(t, toggle.Response.ReviewPrompt)
}

func TestServer_StartSweepConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)
	client.EXPECT().SeriesDetails(gomock.Any(), int64(42)).Times(1).Return(laCasaDetails(), nil)

	s, tr := newTestServer(t, client)

	req := httptest.NewRequest("POST", "/api/v1/shows", bytes.NewBufferString(`{"tmdbId": 42}`))
	rr := httptest.NewRecorder()
	s.AddShow().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	// hold the background sweep open so the second trigger must lose
	release := make(chan struct{})
	client.EXPECT().SeriesDetails(gomock.Any(), int64(42)).Times(1).DoAndReturn(
		func(context.Context, int64) (*tmdb.SeriesDetails, error) {
			<-release
			return laCasaDetails(), nil
		})

	req = httptest.NewRequest("POST", "/api/v1/sweep", nil)
	rr = httptest.NewRecorder()
	s.StartSweep().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusAccepted, rr.Code)

	req = httptest.NewRequest("POST", "/api/v1/sweep", nil)
	rr = httptest.NewRecorder()
	s.StartSweep().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	close(release)
	assert.Eventually(t, func() bool { return !tr.Sweeping() }, 5*time.Second, 10*time.Millisecond)
}

func TestServer_SyncStatus(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/api/v1/sync", nil)
	rr := httptest.NewRecorder()
	s.SyncStatus().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Response map[string]int64 `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, int64(0), response.Response["pending"])
}

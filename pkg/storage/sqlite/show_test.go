package sqlite

import (
	"context"
	"testing"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/seguido/seguido/pkg/machine"
	"github.com/seguido/seguido/pkg/storage"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) storage.Storage {
	t.Helper()

	store, err := New(":memory:")
	require.NoError(t, err)
	return store
}

func testShow(userID string, tmdbID int64, title string) storage.Show {
	show := storage.Show{}
	show.UserID = userID
	show.TmdbID = tmdbID
	show.Title = title
	show.RemoteStatus = string(storage.RemoteStatusAiring)
	show.Watched = "{}"
	return show
}

func TestCreateAndGetShow(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	require.NoError(t, err)
	assert.Equal(t, "La Casa", got.Title)
	assert.Equal(t, int64(42), got.TmdbID)
	assert.Equal(t, storage.StatePending, got.State)
	assert.NotNil(t, got.Added)
	assert.NotNil(t, got.UpdatedAt)
}

func TestCreateShowDuplicate(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)

	_, err = store.CreateShow(ctx, testShow("tester", 42, "La Casa otra vez"), storage.StatePending)
	assert.ErrorIs(t, err, storage.ErrShowExists)

	// a different user may track the same show
	_, err = store.CreateShow(ctx, testShow("other", 42, "La Casa"), storage.StatePending)
	assert.NoError(t, err)
}

func TestGetShowNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.GetShow(context.Background(), table.Show.ID.EQ(sqlite.Int64(99)))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListShowsFiltersByUser(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.CreateShow(ctx, testShow("tester", 1, "Uno"), storage.StatePending)
	require.NoError(t, err)
	_, err = store.CreateShow(ctx, testShow("tester", 2, "Dos"), storage.StatePending)
	require.NoError(t, err)
	_, err = store.CreateShow(ctx, testShow("other", 3, "Tres"), storage.StatePending)
	require.NoError(t, err)

	shows, err := store.ListShows(ctx, table.Show.UserID.EQ(sqlite.String("tester")))
	require.NoError(t, err)
	assert.Len(t, shows, 2)

	all, err := store.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateShow(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)

	got, err := store.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	require.NoError(t, err)

	got.Watched = `{"1":[1,2]}`
	got.AiredEpisodes = 6
	require.NoError(t, store.UpdateShow(ctx, got.Show))

	updated, err := store.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	require.NoError(t, err)
	assert.Equal(t, `{"1":[1,2]}`, updated.Watched)
	assert.Equal(t, int32(6), updated.AiredEpisodes)
	// the state rides along untouched
	assert.Equal(t, storage.StatePending, updated.State)
}

func TestUpdateShowState(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)

	require.NoError(t, store.UpdateShowState(ctx, id, storage.StateWatching))
	require.NoError(t, store.UpdateShowState(ctx, id, storage.StateUpToDate))

	got, err := store.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	require.NoError(t, err)
	assert.Equal(t, storage.StateUpToDate, got.State)
}

func TestUpdateShowStateRejectsNoop(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)

	err = store.UpdateShowState(ctx, id, storage.StatePending)
	assert.ErrorIs(t, err, machine.ErrInvalidTransition)
}

func TestDeleteShow(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.CreateShow(ctx, testShow("tester", 42, "La Casa"), storage.StatePending)
	require.NoError(t, err)

	require.NoError(t, store.DeleteShow(ctx, id))

	_, err = store.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

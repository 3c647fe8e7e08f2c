package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sharetube/playerbridge/internal/repository/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour, nil), s
}

func ptr[T any](v T) *T {
	return &v
}

func TestSnapshotLifecycle(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	_, err := r.GetSnapshot(ctx, "p1")
	require.ErrorIs(t, err, player.ErrSnapshotNotFound)

	initial := player.Snapshot{
		Mount:     "player-1",
		VideoID:   "M7lc1UVf-VE",
		State:     -1,
		IsPaused:  true,
		UpdatedAt: 100,
	}
	require.NoError(t, r.SetSnapshot(ctx, &player.SetSnapshotParams{PlayerID: "p1", Snapshot: initial}))
	assert.Equal(t, time.Hour, s.TTL("player:p1:snapshot"))

	got, err := r.GetSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, initial, got)

	require.NoError(t, r.UpdateSnapshot(ctx, &player.UpdateSnapshotParams{
		PlayerID:  "p1",
		State:     ptr(1),
		IsPlaying: ptr(true),
		IsPaused:  ptr(false),
		Ready:     ptr(true),
		UpdatedAt: 200,
	}))

	got, err = r.GetSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, player.Snapshot{
		Mount:     "player-1",
		VideoID:   "M7lc1UVf-VE",
		State:     1,
		IsPlaying: true,
		Ready:     true,
		UpdatedAt: 200,
	}, got)

	require.NoError(t, r.RemoveSnapshot(ctx, "p1"))
	assert.ErrorIs(t, r.RemoveSnapshot(ctx, "p1"), player.ErrSnapshotNotFound)
}

func TestUpdateMissingSnapshot(t *testing.T) {
	r, _ := newTestRepo(t)

	err := r.UpdateSnapshot(context.Background(), &player.UpdateSnapshotParams{PlayerID: "nope", Ready: ptr(true)})
	assert.ErrorIs(t, err, player.ErrSnapshotNotFound)
}

func TestSetSnapshotReplaces(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetSnapshot(ctx, &player.SetSnapshotParams{
		PlayerID: "p1",
		Snapshot: player.Snapshot{Mount: "a", LastError: "video not found"},
	}))
	require.NoError(t, r.SetSnapshot(ctx, &player.SetSnapshotParams{
		PlayerID: "p1",
		Snapshot: player.Snapshot{Mount: "b"},
	}))

	got, err := r.GetSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Mount)
	assert.Empty(t, got.LastError)
}

package redis

import (
	"context"
	"fmt"

	"github.com/sharetube/playerbridge/internal/repository/player"
	omitnilpointers "github.com/sharetube/playerbridge/pkg/omit-nil-pointers"
)

func (r repo) getSnapshotKey(playerID string) string {
	return "player:" + playerID + ":snapshot"
}

func (r repo) SetSnapshot(ctx context.Context, params *player.SetSnapshotParams) error {
	funcName := "player.redis.SetSnapshot"
	r.logger.DebugContext(ctx, funcName, "player_id", params.PlayerID)

	snapshotKey := r.getSnapshotKey(params.PlayerID)
	pipe := r.rc.TxPipeline()
	pipe.Del(ctx, snapshotKey)
	pipe.HSet(ctx, snapshotKey, params.Snapshot)
	pipe.Expire(ctx, snapshotKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (r repo) UpdateSnapshot(ctx context.Context, params *player.UpdateSnapshotParams) error {
	funcName := "player.redis.UpdateSnapshot"
	r.logger.DebugContext(ctx, funcName, "player_id", params.PlayerID)

	snapshotKey := r.getSnapshotKey(params.PlayerID)
	cmd := r.rc.Exists(ctx, snapshotKey)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("failed to check snapshot: %w", err)
	}

	if cmd.Val() == 0 {
		return player.ErrSnapshotNotFound
	}

	fields := omitnilpointers.OmitNilPointers(map[string]any{
		"video_id":     params.VideoID,
		"state":        params.State,
		"is_playing":   params.IsPlaying,
		"is_paused":    params.IsPaused,
		"ended":        params.Ended,
		"is_buffering": params.IsBuffering,
		"ready":        params.Ready,
		"last_error":   params.LastError,
		"updated_at":   params.UpdatedAt,
	})

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, snapshotKey, fields)
	pipe.Expire(ctx, snapshotKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	return nil
}

func (r repo) GetSnapshot(ctx context.Context, playerID string) (player.Snapshot, error) {
	funcName := "player.redis.GetSnapshot"
	r.logger.DebugContext(ctx, funcName, "player_id", playerID)

	snapshotKey := r.getSnapshotKey(playerID)
	res := r.rc.HGetAll(ctx, snapshotKey)
	if err := res.Err(); err != nil {
		return player.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if len(res.Val()) == 0 {
		return player.Snapshot{}, player.ErrSnapshotNotFound
	}

	var snapshot player.Snapshot
	if err := res.Scan(&snapshot); err != nil {
		return player.Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	r.rc.Expire(ctx, snapshotKey, r.expireDuration)

	return snapshot, nil
}

func (r repo) RemoveSnapshot(ctx context.Context, playerID string) error {
	funcName := "player.redis.RemoveSnapshot"
	r.logger.DebugContext(ctx, funcName, "player_id", playerID)

	res, err := r.rc.Del(ctx, r.getSnapshotKey(playerID)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}

	if res == 0 {
		return player.ErrSnapshotNotFound
	}

	return nil
}

package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sharetube/playerbridge/internal/repository/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
)

type CreatePlayerParams struct {
	Mount       string
	Options     ytplayer.Options
	StrictState bool
}

type CreatePlayerResponse struct {
	PlayerID string
}

func (s *service) CreatePlayer(ctx context.Context, params *CreatePlayerParams) (CreatePlayerResponse, error) {
	playerID := uuid.NewString()

	initial := ytplayer.ClassifyState(ytplayer.StateUnstarted)
	if err := s.snapshots.SetSnapshot(ctx, &player.SetSnapshotParams{
		PlayerID: playerID,
		Snapshot: player.Snapshot{
			Mount:       params.Mount,
			VideoID:     params.Options.VideoID,
			State:       int(ytplayer.StateUnstarted),
			IsPlaying:   initial.IsPlaying,
			IsPaused:    initial.IsPaused,
			Ended:       initial.Ended,
			IsBuffering: initial.IsBuffering,
			UpdatedAt:   time.Now().UnixMilli(),
		},
	}); err != nil {
		return CreatePlayerResponse{}, fmt.Errorf("failed to set snapshot: %w", err)
	}

	writer := s.newSnapshotWriter(playerID)
	opts := params.Options
	opts.Callbacks = s.snapshotCallbacks(playerID, writer)

	facade, err := s.factory.CreatePlayer(ctx, ytplayer.Mount(params.Mount), opts, params.StrictState)
	if err != nil {
		writer.close()
		if err := s.snapshots.RemoveSnapshot(ctx, playerID); err != nil {
			s.logger.WarnContext(ctx, "failed to remove snapshot", "player_id", playerID, "error", err)
		}
		return CreatePlayerResponse{}, fmt.Errorf("failed to create player: %w", err)
	}

	s.mu.Lock()
	s.players[playerID] = &livePlayer{
		facade: facade,
		writer: writer,
		mount:  params.Mount,
		strict: params.StrictState,
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "player created", "player_id", playerID, "mount", params.Mount)
	return CreatePlayerResponse{PlayerID: playerID}, nil
}

type GetPlayerResponse struct {
	PlayerID    string          `json:"player_id"`
	Mount       string          `json:"mount"`
	StrictState bool            `json:"strict_state"`
	Ready       bool            `json:"ready"`
	State       string          `json:"state"`
	Status      ytplayer.Status `json:"status"`
	Snapshot    player.Snapshot `json:"snapshot"`
}

// GetPlayer combines the live widget state with the stored snapshot.
func (s *service) GetPlayer(ctx context.Context, playerID string) (GetPlayerResponse, error) {
	p, err := s.getPlayer(playerID)
	if err != nil {
		return GetPlayerResponse{}, err
	}

	snapshot, err := s.snapshots.GetSnapshot(ctx, playerID)
	if err != nil && !errors.Is(err, player.ErrSnapshotNotFound) {
		return GetPlayerResponse{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	resp := GetPlayerResponse{
		PlayerID:    playerID,
		Mount:       p.mount,
		StrictState: p.strict,
		State:       ytplayer.StateUnstarted.String(),
		Snapshot:    snapshot,
	}
	if w, ok := p.facade.Widget(); ok {
		resp.Ready = true
		resp.State = w.PlayerState().String()
		resp.Status = ytplayer.Classify(w)
	}

	return resp, nil
}

// RemovePlayer destroys the widget when it is ready and forgets the player.
func (s *service) RemovePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	p, ok := s.players[playerID]
	delete(s.players, playerID)
	s.mu.Unlock()

	if !ok {
		return ErrPlayerNotFound
	}

	if _, ready := p.facade.Widget(); ready {
		destroyCtx, cancel := context.WithTimeout(ctx, s.commandTimeout)
		if _, err := p.facade.Destroy(destroyCtx).Await(destroyCtx); err != nil {
			s.logger.WarnContext(ctx, "failed to destroy widget", "player_id", playerID, "error", err)
		}
		cancel()
	}
	p.facade.Close()
	p.writer.close()

	if err := s.snapshots.RemoveSnapshot(ctx, playerID); err != nil && !errors.Is(err, player.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed", "player_id", playerID)
	return nil
}

// Script loads the widget api if needed and returns the script host pages
// include.
func (s *service) Script(ctx context.Context) ([]byte, error) {
	if _, err := s.bootstrap.Resolve(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap: %w", err)
	}

	script, ok := s.scripts.Script()
	if !ok {
		return nil, ErrNoScript
	}

	return script, nil
}

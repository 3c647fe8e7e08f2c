package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharetube/playerbridge/internal/repository/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/ytvideodata"
)

type CommandParams struct {
	PlayerID string
	Command  string
	Args     []any
}

// Command runs a widget command by name and returns its result.
func (s *service) Command(ctx context.Context, params *CommandParams) (any, error) {
	cmd, ok := ytplayer.ParseCommand(params.Command)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, params.Command)
	}

	p, err := s.getPlayer(params.PlayerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	value, err := p.facade.Call(ctx, cmd, params.Args...).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", cmd, err)
	}

	return value, nil
}

type UpdateVideoParams struct {
	PlayerID string
	VideoID  string
	Autoplay bool
	Start    int
	End      int
}

// UpdateVideo switches the player's video. An empty video id stops playback.
func (s *service) UpdateVideo(ctx context.Context, params *UpdateVideoParams) error {
	p, err := s.getPlayer(params.PlayerID)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	if _, err := ytplayer.UpdateVideo(callCtx, p.facade, ytplayer.VideoRequest{
		VideoID:  params.VideoID,
		Autoplay: params.Autoplay,
		Start:    params.Start,
		End:      params.End,
	}).Await(callCtx); err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if err := s.snapshots.UpdateSnapshot(ctx, &player.UpdateSnapshotParams{
		PlayerID:  params.PlayerID,
		VideoID:   &params.VideoID,
		UpdatedAt: time.Now().UnixMilli(),
	}); err != nil && !errors.Is(err, player.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	return nil
}

type GetVideoDataResponse struct {
	VideoID string `json:"video_id"`
	*ytvideodata.VideoData
}

// GetVideoData looks up metadata of the video the widget currently shows.
func (s *service) GetVideoData(ctx context.Context, playerID string) (GetVideoDataResponse, error) {
	p, err := s.getPlayer(playerID)
	if err != nil {
		return GetVideoDataResponse{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	value, err := p.facade.GetVideoURL(callCtx).Await(callCtx)
	if err != nil {
		return GetVideoDataResponse{}, fmt.Errorf("failed to get video url: %w", err)
	}

	videoURL, _ := value.(string)
	videoID := ytplayer.CurrentVideoID(videoURL)
	if videoID == "" {
		return GetVideoDataResponse{}, ErrNoVideo
	}

	data, err := s.videos.Get(ctx, videoID)
	if err != nil {
		return GetVideoDataResponse{}, fmt.Errorf("failed to get video data: %w", err)
	}

	return GetVideoDataResponse{VideoID: videoID, VideoData: data}, nil
}

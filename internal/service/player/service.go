package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/playerbridge/internal/repository/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/ytvideodata"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoVideo        = errors.New("player has no video")
	ErrNoScript       = errors.New("widget api script is not available")
)

type iFactory interface {
	CreatePlayer(ctx context.Context, target ytplayer.Target, opts ytplayer.Options, strictState bool) (*ytplayer.Facade, error)
}

type iSnapshotRepo interface {
	SetSnapshot(context.Context, *player.SetSnapshotParams) error
	UpdateSnapshot(context.Context, *player.UpdateSnapshotParams) error
	GetSnapshot(context.Context, string) (player.Snapshot, error)
	RemoveSnapshot(context.Context, string) error
}

type iVideoData interface {
	Get(ctx context.Context, videoId string) (*ytvideodata.VideoData, error)
}

type iBootstrap interface {
	Resolve(ctx context.Context) (ytplayer.Constructor, error)
}

type iScriptStore interface {
	Script() ([]byte, bool)
}

type Config struct {
	// CommandTimeout bounds a single command including its state wait.
	CommandTimeout time.Duration
	// SnapshotTimeout bounds each snapshot write made from widget events.
	SnapshotTimeout time.Duration
}

type livePlayer struct {
	facade *ytplayer.Facade
	writer *snapshotWriter
	mount  string
	strict bool
}

type service struct {
	factory   iFactory
	snapshots iSnapshotRepo
	videos    iVideoData
	bootstrap iBootstrap
	scripts   iScriptStore

	commandTimeout  time.Duration
	snapshotTimeout time.Duration
	logger          *slog.Logger

	mu      sync.RWMutex
	players map[string]*livePlayer
}

func NewService(
	factory iFactory,
	snapshots iSnapshotRepo,
	videos iVideoData,
	bootstrap iBootstrap,
	scripts iScriptStore,
	cfg *Config,
	logger *slog.Logger,
) *service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{
		factory:         factory,
		snapshots:       snapshots,
		videos:          videos,
		bootstrap:       bootstrap,
		scripts:         scripts,
		commandTimeout:  10 * time.Second,
		snapshotTimeout: 5 * time.Second,
		logger:          logger,
		players:         make(map[string]*livePlayer),
	}
	if cfg != nil {
		if cfg.CommandTimeout > 0 {
			s.commandTimeout = cfg.CommandTimeout
		}
		if cfg.SnapshotTimeout > 0 {
			s.snapshotTimeout = cfg.SnapshotTimeout
		}
	}

	return s
}

func (s *service) getPlayer(playerID string) (*livePlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return p, nil
}

// Close releases every live player. Stored snapshots are kept.
func (s *service) Close() {
	s.mu.Lock()
	players := s.players
	s.players = make(map[string]*livePlayer)
	s.mu.Unlock()

	for _, p := range players {
		p.facade.Close()
		p.writer.close()
	}
}

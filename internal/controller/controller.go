package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/playerbridge/internal/service/player"
	"github.com/sharetube/playerbridge/pkg/validator"
	"github.com/sharetube/playerbridge/pkg/wsrouter"
)

type iPlayerService interface {
	CreatePlayer(context.Context, *player.CreatePlayerParams) (player.CreatePlayerResponse, error)
	GetPlayer(context.Context, string) (player.GetPlayerResponse, error)
	RemovePlayer(context.Context, string) error
	Command(context.Context, *player.CommandParams) (any, error)
	UpdateVideo(context.Context, *player.UpdateVideoParams) error
	GetVideoData(context.Context, string) (player.GetVideoDataResponse, error)
	Script(context.Context) ([]byte, error)
}

type iHostHub interface {
	ServeConn(ctx context.Context, conn *websocket.Conn, mws ...wsrouter.Middleware) error
}

type controller struct {
	playerService iPlayerService
	hub           iHostHub
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	logger        *slog.Logger
}

func NewController(playerService iPlayerService, hub iHostHub, logger *slog.Logger) *controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		playerService: playerService,
		hub:           hub,
		validate:      validator.NewValidator(),
		logger:        logger,
	}
}

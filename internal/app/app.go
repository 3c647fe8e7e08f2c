package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/playerbridge/internal/controller"
	"github.com/sharetube/playerbridge/internal/remote"
	"github.com/sharetube/playerbridge/internal/repository/host/inmemory"
	playerRedis "github.com/sharetube/playerbridge/internal/repository/player/redis"
	"github.com/sharetube/playerbridge/internal/service/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/ctxlogger"
	"github.com/sharetube/playerbridge/pkg/iframeapi"
	"github.com/sharetube/playerbridge/pkg/redisclient"
	"github.com/sharetube/playerbridge/pkg/ytvideodata"
)

type AppConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	LogLevel       string        `json:"log_level"`
	RedisPort      int           `json:"redis_port"`
	RedisHost      string        `json:"redis_host"`
	RedisPassword  string        `json:"-"`
	SnapshotTTL    time.Duration `json:"snapshot_ttl"`
	PageScheme     string        `json:"page_scheme"`
	ReadyTimeout   time.Duration `json:"ready_timeout"`
	CommandTimeout time.Duration `json:"command_timeout"`
	CallTimeout    time.Duration `json:"call_timeout"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.SnapshotTTL <= 0 {
		return fmt.Errorf("snapshot ttl must be greater than 0")
	}
	if cfg.PageScheme != "http" && cfg.PageScheme != "https" {
		return fmt.Errorf("page scheme must be http or https")
	}
	if cfg.ReadyTimeout < 0 {
		return fmt.Errorf("ready timeout must not be negative")
	}
	if cfg.CommandTimeout <= 0 {
		return fmt.Errorf("command timeout must be greater than 0")
	}
	if cfg.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// newHandler wires every component behind the http handler. The returned
// func releases live players.
func newHandler(cfg *AppConfig, rc *redis.Client, client *http.Client, scriptURL string, logger *slog.Logger) (http.Handler, func()) {
	hostRepo := inmemory.NewRepo[*remote.Host](logger)
	hub := remote.NewHub(hostRepo, &remote.Config{
		CallTimeout: cfg.CallTimeout,
	}, logger)

	bootstrap := ytplayer.NewBootstrap(func(ctx context.Context) (ytplayer.Constructor, error) {
		script, err := iframeapi.Fetch(ctx, client, scriptURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch iframe api: %w", err)
		}

		hub.SetScript(script)
		return hub, nil
	}, logger)

	bootstrap.OnReady(func(ytplayer.Constructor) {
		script, _ := hub.Script()
		logger.Info("widget api loaded", "url", scriptURL, "script_bytes", len(script))
	})

	factory := ytplayer.NewFactory(bootstrap, hub, &ytplayer.FactoryConfig{
		ReadyTimeout: cfg.ReadyTimeout,
	}, logger)

	snapshotRepo := playerRedis.NewRepo(rc, cfg.SnapshotTTL, logger)
	playerService := player.NewService(
		factory,
		snapshotRepo,
		ytvideodata.New(client),
		bootstrap,
		hub,
		&player.Config{CommandTimeout: cfg.CommandTimeout},
		logger,
	)

	return controller.NewController(playerService, hub, logger).GetMux(), playerService.Close
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return err
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)
	slog.SetDefault(logger)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	client := &http.Client{Timeout: 30 * time.Second}
	handler, closePlayers := newHandler(cfg, rc, client, iframeapi.ScriptURL(cfg.PageScheme), logger)
	defer closePlayers()

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: handler}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-serverCtx.Done()

	return nil
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/playerbridge/internal/repository/host"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/ctxlogger"
	"github.com/sharetube/playerbridge/pkg/wsrouter"
)

var ErrUnknownPlayer = errors.New("unknown player")

type iHostRepo interface {
	Add(*Host) error
	Remove(hostID string) (*Host, error)
	SetMounts(hostID string, mounts []string) error
	GetByMount(mount string) (*Host, error)
	HasMount(mount string) bool
}

type Config struct {
	// CallTimeout bounds how long a command waits for the host's answer.
	// Zero waits until the caller's context ends.
	CallTimeout time.Duration
}

// Hub tracks connected hosts and builds widgets inside them.
type Hub struct {
	hosts       iHostRepo
	callTimeout time.Duration
	logger      *slog.Logger

	mu     sync.RWMutex
	script []byte
}

func NewHub(hosts iHostRepo, cfg *Config, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Hub{
		hosts:  hosts,
		logger: logger,
	}
	if cfg != nil {
		h.callTimeout = cfg.CallTimeout
	}

	return h
}

func (h *Hub) HasMount(mount string) bool {
	return h.hosts.HasMount(mount)
}

func (h *Hub) NewWidget(ctx context.Context, mount string, opts ytplayer.Options) (ytplayer.Widget, error) {
	hst, err := h.hosts.GetByMount(mount)
	if err != nil {
		if errors.Is(err, host.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ytplayer.ErrMountNotFound, mount)
		}
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	w, err := hst.construct(ctx, mount, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct widget: %w", err)
	}

	return w, nil
}

// SetScript stores the widget api script served to host pages.
func (h *Hub) SetScript(script []byte) {
	h.mu.Lock()
	h.script = script
	h.mu.Unlock()
}

func (h *Hub) Script() ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.script, h.script != nil
}

type contextKey int

const (
	hostCtxKey contextKey = iota
)

func (h *Hub) getHostFromCtx(ctx context.Context) *Host {
	hst, _ := ctx.Value(hostCtxKey).(*Host)
	return hst
}

// ServeConn registers conn as a host and serves it until the connection
// fails. Widgets built in the host get an error event when it goes away.
func (h *Hub) ServeConn(ctx context.Context, conn *websocket.Conn, mws ...wsrouter.Middleware) error {
	hst := newHost(conn, h.callTimeout, h.logger)
	if err := h.hosts.Add(hst); err != nil {
		conn.Close()
		return fmt.Errorf("failed to add host: %w", err)
	}
	defer h.dropHost(ctx, hst)

	ctx = ctxlogger.AppendCtx(ctx, slog.String("host_id", hst.id))
	ctx = context.WithValue(ctx, hostCtxKey, hst)
	h.logger.InfoContext(ctx, "host connected")

	mux := wsrouter.New()
	mux.Use(mws...)
	mux.OnError(h.handleError)

	wsrouter.AddRoute(mux, TypeAlive, h.handleAlive)
	wsrouter.AddRoute(mux, TypeMounts, h.handleMounts)
	wsrouter.AddRoute(mux, TypeEvent, h.handleEvent)
	wsrouter.AddRoute(mux, TypeResult, h.handleResult)

	return mux.ServeConn(ctx, conn)
}

func (h *Hub) dropHost(ctx context.Context, hst *Host) {
	if _, err := h.hosts.Remove(hst.id); err != nil {
		h.logger.WarnContext(ctx, "failed to remove host", "error", err)
	}

	widgets := hst.close()
	for _, w := range widgets {
		w.hostGone()
	}

	h.logger.InfoContext(ctx, "host disconnected", "orphaned_widgets", len(widgets))
}

func (h *Hub) handleError(ctx context.Context, _ *websocket.Conn, err error) {
	h.logger.WarnContext(ctx, "failed to handle host message", "error", err)

	if hst := h.getHostFromCtx(ctx); hst != nil {
		if err := hst.send(&Output{Type: TypeError, Payload: ErrorOutput{Message: err.Error()}}); err != nil {
			h.logger.DebugContext(ctx, "failed to report error to host", "error", err)
		}
	}
}

func (h *Hub) handleAlive(_ context.Context, _ *websocket.Conn, _ EmptyInput) error {
	return nil
}

func (h *Hub) handleMounts(ctx context.Context, _ *websocket.Conn, input MountsInput) error {
	hst := h.getHostFromCtx(ctx)

	if err := h.hosts.SetMounts(hst.id, input.Mounts); err != nil {
		return fmt.Errorf("failed to set mounts: %w", err)
	}

	return nil
}

func (h *Hub) handleEvent(ctx context.Context, _ *websocket.Conn, input EventInput) error {
	hst := h.getHostFromCtx(ctx)

	w, ok := hst.widget(input.PlayerID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, input.PlayerID)
	}

	if err := w.deliver(ytplayer.EventName(input.Name), input.Data); err != nil {
		return fmt.Errorf("failed to deliver event: %w", err)
	}

	return nil
}

func (h *Hub) handleResult(ctx context.Context, _ *websocket.Conn, input ResultInput) error {
	hst := h.getHostFromCtx(ctx)

	if !hst.resolve(input) {
		h.logger.DebugContext(ctx, "result for unknown call", "call_id", input.CallID)
	}

	return nil
}

// Verify Hub implements the widget construction interfaces at compile time.
var (
	_ ytplayer.Constructor   = (*Hub)(nil)
	_ ytplayer.MountResolver = (*Hub)(nil)
)

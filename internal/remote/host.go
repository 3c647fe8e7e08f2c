package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/sharetube/playerbridge/internal/ytplayer"
)

var (
	ErrCallTimeout = errors.New("host did not answer in time")
	ErrHostGone    = errors.New("host connection closed")
)

const writeWait = 10 * time.Second

// Host is one connected page that can construct widgets in its mount points.
type Host struct {
	id          string
	conn        *websocket.Conn
	callTimeout time.Duration
	logger      *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan ResultInput
	widgets map[string]*Widget
	closed  chan struct{}
}

func newHost(conn *websocket.Conn, callTimeout time.Duration, logger *slog.Logger) *Host {
	id := uuid.NewString()

	return &Host{
		id:          id,
		conn:        conn,
		callTimeout: callTimeout,
		logger:      logger.With("host_id", id),
		pending:     make(map[string]chan ResultInput),
		widgets:     make(map[string]*Widget),
		closed:      make(chan struct{}),
	}
}

func (h *Host) ID() string {
	return h.id
}

func (h *Host) send(out *Output) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	select {
	case <-h.closed:
		return ErrHostGone
	default:
	}

	if err := h.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := h.conn.WriteJSON(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", out.Type, err)
	}

	return nil
}

func (h *Host) construct(ctx context.Context, mount string, opts ytplayer.Options) (*Widget, error) {
	w := newWidget(uuid.NewString(), mount, h, opts.Events, h.logger)

	// registered first, the host may report ready right after CONSTRUCT
	h.mu.Lock()
	select {
	case <-h.closed:
		h.mu.Unlock()
		return nil, ErrHostGone
	default:
	}
	h.widgets[w.id] = w
	h.mu.Unlock()

	if err := h.send(&Output{
		Type: TypeConstruct,
		Payload: ConstructOutput{
			PlayerID: w.id,
			Mount:    mount,
			Options:  newConstructOptions(opts),
		},
	}); err != nil {
		h.removeWidget(w.id)
		return nil, err
	}

	h.logger.DebugContext(ctx, "widget construct sent", "player_id", w.id, "mount", mount)
	return w, nil
}

func (h *Host) call(ctx context.Context, widgetID string, cmd ytplayer.Command, args []any) (ResultInput, error) {
	callID := uuid.NewString()
	result := make(chan ResultInput, 1)

	h.mu.Lock()
	h.pending[callID] = result
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.pending, callID)
		h.mu.Unlock()
	}()

	if args == nil {
		args = []any{}
	}
	if err := h.send(&Output{
		Type: TypeCall,
		Payload: CallOutput{
			CallID:   callID,
			PlayerID: widgetID,
			Command:  cmd.String(),
			Args:     args,
		},
	}); err != nil {
		return ResultInput{}, err
	}

	var timeout <-chan time.Time
	if h.callTimeout > 0 {
		timer := time.NewTimer(h.callTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-result:
		return res, nil
	case <-timeout:
		return ResultInput{}, fmt.Errorf("%w: %s", ErrCallTimeout, cmd)
	case <-h.closed:
		return ResultInput{}, ErrHostGone
	case <-ctx.Done():
		return ResultInput{}, ctx.Err()
	}
}

func (h *Host) resolve(res ResultInput) bool {
	h.mu.Lock()
	ch, ok := h.pending[res.CallID]
	delete(h.pending, res.CallID)
	h.mu.Unlock()

	if ok {
		ch <- res
	}
	return ok
}

func (h *Host) widget(id string) (*Widget, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.widgets[id]
	return w, ok
}

func (h *Host) removeWidget(id string) {
	h.mu.Lock()
	delete(h.widgets, id)
	h.mu.Unlock()
}

// close fails pending calls and returns the widgets that lived on the host.
func (h *Host) close() []*Widget {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.closed:
		return nil
	default:
	}
	close(h.closed)

	widgets := lo.Values(h.widgets)
	h.widgets = make(map[string]*Widget)
	return widgets
}

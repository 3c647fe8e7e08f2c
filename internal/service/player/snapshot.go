package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/playerbridge/internal/repository/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/ctxlogger"
)

// snapshotWriter persists the widget events of one player on its own
// goroutine. Updates queued while a write is in flight are merged, so the
// store only ever receives the latest state.
type snapshotWriter struct {
	ctx     context.Context
	repo    iSnapshotRepo
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	pending *player.UpdateSnapshotParams

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (s *service) newSnapshotWriter(playerID string) *snapshotWriter {
	w := &snapshotWriter{
		ctx:     ctxlogger.AppendCtx(context.Background(), slog.String("player_id", playerID)),
		repo:    s.snapshots,
		timeout: s.snapshotTimeout,
		logger:  s.logger,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()

	return w
}

// push queues params without blocking the caller.
func (w *snapshotWriter) push(params *player.UpdateSnapshotParams) {
	w.mu.Lock()
	w.pending = mergeUpdateParams(w.pending, params)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *snapshotWriter) run() {
	defer close(w.done)

	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *snapshotWriter) flush() {
	w.mu.Lock()
	params := w.pending
	w.pending = nil
	w.mu.Unlock()

	if params == nil {
		return
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	if err := w.repo.UpdateSnapshot(ctx, params); err != nil {
		w.logger.WarnContext(w.ctx, "failed to update snapshot", "error", err)
	}
}

// close writes what is still queued and waits for the writer to exit.
func (w *snapshotWriter) close() {
	w.closeOnce.Do(func() { close(w.stop) })
	<-w.done
}

// mergeUpdateParams lays the non-nil fields of next over prev.
func mergeUpdateParams(prev, next *player.UpdateSnapshotParams) *player.UpdateSnapshotParams {
	if prev == nil {
		merged := *next
		return &merged
	}

	merged := *prev
	merged.PlayerID = next.PlayerID
	merged.UpdatedAt = next.UpdatedAt
	if next.VideoID != nil {
		merged.VideoID = next.VideoID
	}
	if next.State != nil {
		merged.State = next.State
	}
	if next.IsPlaying != nil {
		merged.IsPlaying = next.IsPlaying
	}
	if next.IsPaused != nil {
		merged.IsPaused = next.IsPaused
	}
	if next.Ended != nil {
		merged.Ended = next.Ended
	}
	if next.IsBuffering != nil {
		merged.IsBuffering = next.IsBuffering
	}
	if next.Ready != nil {
		merged.Ready = next.Ready
	}
	if next.LastError != nil {
		merged.LastError = next.LastError
	}

	return &merged
}

// snapshotCallbacks hand widget events of playerID to writer. They run on
// the widget's event path and never wait for the store.
func (s *service) snapshotCallbacks(playerID string, writer *snapshotWriter) ytplayer.Callbacks {
	update := func(params *player.UpdateSnapshotParams) {
		params.PlayerID = playerID
		params.UpdatedAt = time.Now().UnixMilli()
		writer.push(params)
	}

	return ytplayer.Callbacks{
		OnReady: func(e ytplayer.Event) {
			params := statusParams(ytplayer.StateUnstarted)
			if e.Target != nil {
				params = statusParams(e.Target.PlayerState())
			}
			params.Ready = ptr(true)
			update(params)
			s.logger.InfoContext(writer.ctx, "player ready")
		},
		OnStateChange: func(e ytplayer.Event) {
			state, ok := e.State()
			if !ok {
				return
			}
			update(statusParams(state))
		},
		OnError: func(e ytplayer.Event) {
			msg := "unknown error"
			if err := e.Err(); err != nil {
				msg = err.Error()
			}
			update(&player.UpdateSnapshotParams{LastError: &msg})
			s.logger.WarnContext(writer.ctx, "player error", "error", msg)
		},
	}
}

func statusParams(state ytplayer.State) *player.UpdateSnapshotParams {
	status := ytplayer.ClassifyState(state)
	return &player.UpdateSnapshotParams{
		State:       ptr(int(state)),
		IsPlaying:   &status.IsPlaying,
		IsPaused:    &status.IsPaused,
		Ended:       &status.Ended,
		IsBuffering: &status.IsBuffering,
	}
}

func ptr[T any](v T) *T {
	return &v
}

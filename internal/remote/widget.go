package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/eventbus"
)

// CallError is a failure reported by the host for a single command.
type CallError struct {
	Command string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("host failed to run %s: %s", e.Command, e.Message)
}

// Widget is a player living in a remote host page. Its state mirrors the
// last stateChange the host reported.
type Widget struct {
	id     string
	mount  string
	host   *Host
	logger *slog.Logger

	mu       sync.RWMutex
	state    ytplayer.State
	handlers ytplayer.EventHandlers

	listeners *eventbus.Bus[ytplayer.Event]
}

func newWidget(id, mount string, h *Host, handlers ytplayer.EventHandlers, logger *slog.Logger) *Widget {
	return &Widget{
		id:        id,
		mount:     mount,
		host:      h,
		logger:    logger,
		state:     ytplayer.StateUnstarted,
		handlers:  handlers,
		listeners: eventbus.New[ytplayer.Event](logger),
	}
}

func (w *Widget) ID() string {
	return w.id
}

func (w *Widget) Mount() string {
	return w.mount
}

func (w *Widget) Call(ctx context.Context, cmd ytplayer.Command, args ...any) (any, error) {
	switch cmd {
	case ytplayer.CmdAddEventListener, ytplayer.CmdRemoveEventListener:
		// functions cannot cross the wire, use AddEventListener
		return nil, ytplayer.ErrUnsupportedCommand
	}

	res, err := w.host.call(ctx, w.id, cmd, args)
	if err != nil {
		return nil, err
	}
	if res.Unsupported {
		return nil, ytplayer.ErrUnsupportedCommand
	}
	if res.Error != "" {
		return nil, &CallError{Command: cmd.String(), Message: res.Error}
	}

	if cmd == ytplayer.CmdDestroy {
		w.host.removeWidget(w.id)
	}

	if len(res.Value) == 0 {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal(res.Value, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", cmd, err)
	}

	return value, nil
}

func (w *Widget) PlayerState() ytplayer.State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Widget) AddEventListener(name ytplayer.EventName, fn func(ytplayer.Event)) func() {
	reg := w.listeners.Subscribe(string(name), fn)
	return func() { w.listeners.Unsubscribe(reg) }
}

// deliver decodes an event reported by the host, updates the mirrored state
// and notifies direct listeners before the construction handlers.
func (w *Widget) deliver(name ytplayer.EventName, raw json.RawMessage) error {
	data, err := decodeEventData(name, raw)
	if err != nil {
		return err
	}

	if state, ok := data.(ytplayer.State); ok {
		w.mu.Lock()
		w.state = state
		w.mu.Unlock()
	}
	if name == ytplayer.EventReady {
		data = nil
	}

	w.emit(ytplayer.Event{Name: name, Data: data, Target: w})
	return nil
}

func (w *Widget) emit(e ytplayer.Event) {
	w.listeners.Dispatch(string(e.Name), e)

	w.mu.RLock()
	handler := w.handlers[e.Name]
	w.mu.RUnlock()
	if handler != nil {
		handler(e)
	}
}

// hostGone tells the widget's owner that the host connection closed.
func (w *Widget) hostGone() {
	w.emit(ytplayer.Event{Name: ytplayer.EventError, Data: ErrHostGone, Target: w})
}

var errNoEventData = errors.New("event data is missing")

func decodeEventData(name ytplayer.EventName, raw json.RawMessage) (any, error) {
	empty := len(raw) == 0 || string(raw) == "null"

	switch name {
	case ytplayer.EventStateChange, ytplayer.EventReady:
		if empty {
			if name == ytplayer.EventReady {
				return nil, nil
			}
			return nil, fmt.Errorf("%s: %w", name, errNoEventData)
		}
		var state int
		if err := json.Unmarshal(raw, &state); err != nil {
			return nil, fmt.Errorf("failed to decode %s state: %w", name, err)
		}
		return ytplayer.State(state), nil
	case ytplayer.EventError:
		var code int
		if !empty {
			if err := json.Unmarshal(raw, &code); err != nil {
				return nil, fmt.Errorf("failed to decode error code: %w", err)
			}
		}
		return &ytplayer.WidgetError{Code: code}, nil
	case ytplayer.EventPlaybackRateChange:
		var rate float64
		if err := json.Unmarshal(raw, &rate); err != nil {
			return nil, fmt.Errorf("failed to decode playback rate: %w", err)
		}
		return rate, nil
	case ytplayer.EventPlaybackQualityChange:
		var quality string
		if err := json.Unmarshal(raw, &quality); err != nil {
			return nil, fmt.Errorf("failed to decode playback quality: %w", err)
		}
		return quality, nil
	default:
		if empty {
			return nil, nil
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("failed to decode %s data: %w", name, err)
		}
		return value, nil
	}
}

package ytplayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sharetube/playerbridge/pkg/eventbus"
)

var ErrClosed = errors.New("player closed")

// Facade queues commands until the widget is ready. In strict mode,
// descriptor-bearing commands also wait for an acceptable playback state.
//
// Commands issued concurrently are not ordered against each other; callers
// that need ordering await each result before issuing the next.
type Facade struct {
	ready  *Future[Widget]
	strict bool
	bus    *eventbus.Bus[Event]
	logger *slog.Logger
}

func NewFacade(ready *Future[Widget], strictState bool, bus *eventbus.Bus[Event], logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = eventbus.New[Event](logger)
	}

	return &Facade{
		ready:  ready,
		strict: strictState,
		bus:    bus,
		logger: logger,
	}
}

// Ready settles once the widget exists and is usable.
func (f *Facade) Ready() *Future[Widget] {
	return f.ready
}

// Widget returns the live instance once ready.
func (f *Facade) Widget() (Widget, bool) {
	return f.ready.Value()
}

func (f *Facade) StrictState() bool {
	return f.strict
}

func (f *Facade) On(name EventName, handler func(Event)) *eventbus.Registration[Event] {
	return f.bus.Subscribe(string(name), handler)
}

func (f *Facade) Off(reg *eventbus.Registration[Event]) {
	f.bus.Unsubscribe(reg)
}

// Close drops every listener subscribed through On and rejects the readiness
// future with ErrClosed if it is still pending.
func (f *Facade) Close() {
	f.ready.Reject(ErrClosed)
	f.bus.Close()
}

// Call queues cmd and returns a future of the widget's return value. A widget
// lacking cmd resolves to nil.
func (f *Facade) Call(ctx context.Context, cmd Command, args ...any) *Future[any] {
	return Go(func() (any, error) {
		return f.call(ctx, cmd, args)
	})
}

func (f *Facade) call(ctx context.Context, cmd Command, args []any) (any, error) {
	w, err := f.ready.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for player: %w", err)
	}

	desc, ok := cmd.Descriptor()
	if !f.strict || !ok || (!desc.ForcedWait && desc.Accepts(w.PlayerState())) {
		value, _, err := f.invoke(ctx, w, cmd, args)
		return value, err
	}

	// subscribe before invoking so a transition caused by the call is not missed
	changes := make(chan struct{}, 1)
	remove := w.AddEventListener(EventStateChange, func(Event) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer remove()

	value, supported, err := f.invoke(ctx, w, cmd, args)
	if err != nil {
		return nil, err
	}
	if !supported {
		return nil, nil
	}

	if err := f.awaitState(ctx, w, cmd, desc, changes); err != nil {
		return nil, err
	}

	return value, nil
}

// invoke calls cmd on w. supported is false when the widget lacks cmd, the
// call then has no effect and must not wait for a state change.
func (f *Facade) invoke(ctx context.Context, w Widget, cmd Command, args []any) (value any, supported bool, err error) {
	value, err = w.Call(ctx, cmd, args...)
	if errors.Is(err, ErrUnsupportedCommand) {
		f.logger.DebugContext(ctx, "command not supported by widget", "command", cmd.String())
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("failed to call %s: %w", cmd, err)
	}

	return value, true, nil
}

func (f *Facade) awaitState(ctx context.Context, w Widget, cmd Command, desc Descriptor, changes <-chan struct{}) error {
	timeout, bounded := desc.Timeout.Get()

	var timer *time.Timer
	var expired <-chan time.Time
	if bounded {
		timer = time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to wait for %s to settle: %w", cmd, ctx.Err())
		case <-expired:
			f.logger.DebugContext(ctx, "state wait timed out", "command", cmd.String(), "timeout", timeout)
			return nil
		case <-changes:
			state := w.PlayerState()
			if desc.Accepts(state) {
				return nil
			}
			if bounded {
				timer.Reset(timeout)
			}
		}
	}
}

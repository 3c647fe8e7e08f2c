package ytplayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/playerbridge/pkg/eventbus"
)

var (
	ErrEventsReserved = errors.New("event handlers cannot be overwritten")
	ErrMountNotFound  = errors.New("mount point does not exist")
	ErrReadyTimeout   = errors.New("player did not become ready in time")
	ErrEmptyTarget    = errors.New("target is empty")
)

// Target says where a player comes from: an existing widget to adopt, or a
// mount point to construct a new one in.
type Target struct {
	widget Widget
	mount  string
}

// Adopt targets an already constructed widget.
func Adopt(w Widget) Target {
	return Target{widget: w}
}

// Mount targets a mount point for a new widget.
func Mount(id string) Target {
	return Target{mount: id}
}

func (t Target) IsAdopted() bool {
	return t.widget != nil
}

func (t Target) MountID() string {
	return t.mount
}

type FactoryConfig struct {
	// ReadyTimeout rejects the readiness future when a new widget has not
	// signalled ready in time. Zero waits forever.
	ReadyTimeout time.Duration
}

type Factory struct {
	bootstrap    *Bootstrap
	mounts       MountResolver
	readyTimeout time.Duration
	logger       *slog.Logger
}

func NewFactory(bootstrap *Bootstrap, mounts MountResolver, cfg *FactoryConfig, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}

	f := &Factory{
		bootstrap: bootstrap,
		mounts:    mounts,
		logger:    logger,
	}
	if cfg != nil {
		f.readyTimeout = cfg.ReadyTimeout
	}

	return f
}

// CreatePlayer returns a facade over the widget designated by target.
//
// It fails before doing any asynchronous work when opts already carries
// event handlers or when the mount point does not exist. Bootstrap and
// construction failures are delivered as EventError on the facade instead;
// without a ReadyTimeout the readiness future then never settles.
func (f *Factory) CreatePlayer(ctx context.Context, target Target, opts Options, strictState bool) (*Facade, error) {
	if opts.Events != nil {
		return nil, ErrEventsReserved
	}

	if !target.IsAdopted() {
		if target.mount == "" {
			return nil, ErrEmptyTarget
		}
		if f.mounts == nil || !f.mounts.HasMount(target.mount) {
			return nil, fmt.Errorf("%w: %q", ErrMountNotFound, target.mount)
		}
	}

	f.bootstrap.Start()

	bus := eventbus.New[Event](f.logger)
	opts.Events = ProxyEvents(bus)

	ready := NewFuture[Widget]()
	facade := NewFacade(ready, strictState, bus, f.logger)
	if !opts.Callbacks.empty() {
		Bind(facade, opts.Callbacks)
	}

	if target.IsAdopted() {
		ready.Resolve(target.widget)
	} else {
		f.construct(context.WithoutCancel(ctx), bus, ready, target.mount, opts)
	}

	return facade, nil
}

func (f *Factory) construct(ctx context.Context, bus *eventbus.Bus[Event], ready *Future[Widget], mount string, opts Options) {
	logger := f.logger.With("mount", mount)

	// the widget may signal ready before NewWidget returns
	signaled := make(chan struct{})
	var once sync.Once
	reg := bus.Subscribe(string(EventReady), func(Event) {
		once.Do(func() { close(signaled) })
	})

	if f.readyTimeout > 0 {
		timer := time.AfterFunc(f.readyTimeout, func() {
			if ready.Reject(ErrReadyTimeout) {
				logger.WarnContext(ctx, "player did not become ready", "timeout", f.readyTimeout)
			}
		})
		go func() {
			<-ready.Done()
			timer.Stop()
		}()
	}

	go func() {
		defer bus.Unsubscribe(reg)

		ctor, err := f.bootstrap.Resolve(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to bootstrap widget api", "error", err)
			bus.Dispatch(string(EventError), Event{Name: EventError, Data: fmt.Errorf("failed to bootstrap: %w", err)})
			return
		}

		w, err := ctor.NewWidget(ctx, mount, opts)
		if err != nil {
			logger.ErrorContext(ctx, "failed to construct widget", "error", err)
			bus.Dispatch(string(EventError), Event{Name: EventError, Data: fmt.Errorf("failed to construct widget: %w", err)})
			return
		}

		select {
		case <-signaled:
			if ready.Resolve(w) {
				logger.DebugContext(ctx, "player ready")
			}
		case <-ready.Done():
		}
	}()
}

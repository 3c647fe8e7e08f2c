package ytplayer

import (
	"context"
	"log/slog"
	"sync"
)

// Loader makes the widget constructor available, e.g. by fetching the
// widget's script.
type Loader func(ctx context.Context) (Constructor, error)

// Bootstrap runs a Loader at most once and shares its result with every
// caller. One Bootstrap is meant to live for the whole process.
type Bootstrap struct {
	load   Loader
	logger *slog.Logger

	start sync.Once
	done  chan struct{}
	ctor  Constructor
	err   error

	mu      sync.Mutex
	pending []func(Constructor)
}

func NewBootstrap(load Loader, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bootstrap{
		load:   load,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start triggers the load. Calls after the first are no-ops.
func (b *Bootstrap) Start() {
	b.start.Do(func() {
		go b.run()
	})
}

func (b *Bootstrap) run() {
	b.logger.Debug("bootstrap load started")

	ctor, err := b.load(context.Background())

	b.mu.Lock()
	b.ctor, b.err = ctor, err
	pending := b.pending
	b.pending = nil
	close(b.done)
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("bootstrap load failed", "error", err)
		return
	}

	b.logger.Info("bootstrap load finished", "continuations", len(pending))
	for _, fn := range pending {
		fn(ctor)
	}
}

// Resolve starts the load if needed and waits for its result. A failed load
// is not retried; every caller sees the same error.
func (b *Bootstrap) Resolve(ctx context.Context) (Constructor, error) {
	b.Start()

	select {
	case <-b.done:
		return b.ctor, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnReady queues fn to run once the constructor is available. Queued
// continuations run in registration order. fn runs immediately when the
// constructor is already available and never runs if the load failed.
func (b *Bootstrap) OnReady(fn func(Constructor)) {
	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		if b.err == nil {
			fn(b.ctor)
		}
		return
	default:
	}
	b.pending = append(b.pending, fn)
	b.mu.Unlock()
}

// Loaded reports whether the constructor is available.
func (b *Bootstrap) Loaded() bool {
	select {
	case <-b.done:
		return b.err == nil
	default:
		return false
	}
}

package ytplayer

import (
	"context"
	"sync"

	"github.com/sharetube/playerbridge/pkg/eventbus"
)

// MockCall records one command received by a MockWidget.
type MockCall struct {
	Command Command
	Args    []any
}

// MockWidget is an in-process test double for Widget.
type MockWidget struct {
	mu           sync.Mutex
	state        State
	calls        []MockCall
	hooks        map[Command]func(args []any) (any, error)
	unsupported  map[Command]bool
	handlers     EventHandlers
	listenerAdds int

	listeners *eventbus.Bus[Event]
}

func NewMockWidget() *MockWidget {
	return &MockWidget{
		state:       StateUnstarted,
		hooks:       make(map[Command]func([]any) (any, error)),
		unsupported: make(map[Command]bool),
		listeners:   eventbus.New[Event](nil),
	}
}

func (m *MockWidget) Call(_ context.Context, cmd Command, args ...any) (any, error) {
	m.mu.Lock()
	if m.unsupported[cmd] {
		m.mu.Unlock()
		return nil, ErrUnsupportedCommand
	}
	m.calls = append(m.calls, MockCall{Command: cmd, Args: args})
	hook := m.hooks[cmd]
	m.mu.Unlock()

	if hook != nil {
		return hook(args)
	}
	return nil, nil
}

func (m *MockWidget) PlayerState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockWidget) AddEventListener(name EventName, fn func(Event)) func() {
	m.mu.Lock()
	m.listenerAdds++
	m.mu.Unlock()

	reg := m.listeners.Subscribe(string(name), fn)
	return func() { m.listeners.Unsubscribe(reg) }
}

// Test helpers

// SetState changes the state without emitting stateChange.
func (m *MockWidget) SetState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Transition changes the state and emits stateChange.
func (m *MockWidget) Transition(s State) {
	m.SetState(s)
	m.Emit(EventStateChange, s)
}

// Emit delivers an event to direct listeners, then to the construction
// handlers.
func (m *MockWidget) Emit(name EventName, data any) {
	e := Event{Name: name, Data: data, Target: m}
	m.listeners.Dispatch(string(name), e)

	m.mu.Lock()
	handler := m.handlers[name]
	m.mu.Unlock()
	if handler != nil {
		handler(e)
	}
}

// OnCall installs fn as the implementation of cmd.
func (m *MockWidget) OnCall(cmd Command, fn func(args []any) (any, error)) {
	m.mu.Lock()
	m.hooks[cmd] = fn
	m.mu.Unlock()
}

// Unsupport makes cmd report ErrUnsupportedCommand.
func (m *MockWidget) Unsupport(cmd Command) {
	m.mu.Lock()
	m.unsupported[cmd] = true
	m.mu.Unlock()
}

func (m *MockWidget) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// ListenerAdds counts AddEventListener calls.
func (m *MockWidget) ListenerAdds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listenerAdds
}

// Listeners counts currently registered direct listeners for name.
func (m *MockWidget) Listeners(name EventName) int {
	return m.listeners.Len(string(name))
}

// MockConstructor builds MockWidgets for a fixed set of mount points.
type MockConstructor struct {
	mu      sync.Mutex
	mounts  map[string]bool
	built   []*MockWidget
	options []Options
	err     error

	// AutoReady makes every new widget emit ready before NewWidget returns.
	AutoReady bool
}

func NewMockConstructor(mounts ...string) *MockConstructor {
	c := &MockConstructor{mounts: make(map[string]bool)}
	for _, m := range mounts {
		c.mounts[m] = true
	}
	return c
}

func (c *MockConstructor) HasMount(mount string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounts[mount]
}

func (c *MockConstructor) NewWidget(_ context.Context, _ string, opts Options) (Widget, error) {
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	w := NewMockWidget()
	w.handlers = opts.Events
	c.built = append(c.built, w)
	c.options = append(c.options, opts)
	autoReady := c.AutoReady
	c.mu.Unlock()

	if autoReady {
		w.Emit(EventReady, nil)
	}
	return w, nil
}

// SetError makes NewWidget fail with err.
func (c *MockConstructor) SetError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Built returns the widgets constructed so far.
func (c *MockConstructor) Built() []*MockWidget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*MockWidget(nil), c.built...)
}

// Options returns the options each widget was constructed with.
func (c *MockConstructor) Options() []Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Options(nil), c.options...)
}

// Verify mocks implement their interfaces at compile time.
var (
	_ Widget        = (*MockWidget)(nil)
	_ Constructor   = (*MockConstructor)(nil)
	_ MountResolver = (*MockConstructor)(nil)
)

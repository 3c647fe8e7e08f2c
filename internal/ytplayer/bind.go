package ytplayer

import "github.com/sharetube/playerbridge/pkg/eventbus"

// Callbacks are optional per-event callbacks. OnPlay, OnPause and OnEnd are
// derived from stateChange codes.
type Callbacks struct {
	OnReady                 func(Event)
	OnError                 func(Event)
	OnStateChange           func(Event)
	OnPlay                  func(Event)
	OnPause                 func(Event)
	OnEnd                   func(Event)
	OnPlaybackRateChange    func(Event)
	OnPlaybackQualityChange func(Event)
}

func (cb Callbacks) empty() bool {
	return cb.OnReady == nil && cb.OnError == nil && cb.OnStateChange == nil &&
		cb.OnPlay == nil && cb.OnPause == nil && cb.OnEnd == nil &&
		cb.OnPlaybackRateChange == nil && cb.OnPlaybackQualityChange == nil
}

// Bind subscribes cb on f and returns a func that unsubscribes everything.
func Bind(f *Facade, cb Callbacks) (unbind func()) {
	var regs []*eventbus.Registration[Event]
	on := func(name EventName, fn func(Event)) {
		if fn != nil {
			regs = append(regs, f.On(name, fn))
		}
	}

	on(EventReady, cb.OnReady)
	on(EventError, cb.OnError)
	on(EventPlaybackRateChange, cb.OnPlaybackRateChange)
	on(EventPlaybackQualityChange, cb.OnPlaybackQualityChange)
	on(EventStateChange, func(e Event) {
		if cb.OnStateChange != nil {
			cb.OnStateChange(e)
		}

		state, ok := e.State()
		if !ok {
			return
		}

		var derived func(Event)
		switch state {
		case StateEnded:
			derived = cb.OnEnd
		case StatePlaying:
			derived = cb.OnPlay
		case StatePaused:
			derived = cb.OnPause
		}
		if derived != nil {
			derived(e)
		}
	})

	return func() {
		for _, reg := range regs {
			f.Off(reg)
		}
	}
}

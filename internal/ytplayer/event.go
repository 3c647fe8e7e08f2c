package ytplayer

import (
	"fmt"
	"strings"

	"github.com/sharetube/playerbridge/pkg/eventbus"
)

// EventName is a widget event as named on the bus.
type EventName string

const (
	EventReady                 EventName = "ready"
	EventStateChange           EventName = "stateChange"
	EventPlaybackQualityChange EventName = "playbackQualityChange"
	EventPlaybackRateChange    EventName = "playbackRateChange"
	EventError                 EventName = "error"
	EventAPIChange             EventName = "apiChange"
	EventVolumeChange          EventName = "volumeChange"
)

// EventNames lists every event the widget can emit.
var EventNames = []EventName{
	EventReady,
	EventStateChange,
	EventPlaybackQualityChange,
	EventPlaybackRateChange,
	EventError,
	EventAPIChange,
	EventVolumeChange,
}

// HandlerName is the options key the widget reads the callback from,
// e.g. "onStateChange".
func (n EventName) HandlerName() string {
	if n == "" {
		return ""
	}
	return "on" + strings.ToUpper(string(n[:1])) + string(n[1:])
}

// Event is the payload delivered to listeners.
//
// Data depends on the event: State for stateChange, float64 for
// playbackRateChange, string for playbackQualityChange and error for error.
type Event struct {
	Name   EventName
	Data   any
	Target Widget
}

// State returns the state carried by a stateChange event.
func (e Event) State() (State, bool) {
	s, ok := e.Data.(State)
	return s, ok
}

// Err returns the error carried by an error event.
func (e Event) Err() error {
	err, _ := e.Data.(error)
	return err
}

// WidgetError is an error code reported by the widget itself.
type WidgetError struct {
	Code int
}

func (e *WidgetError) Error() string {
	switch e.Code {
	case 2:
		return "invalid parameter value"
	case 5:
		return "html5 player error"
	case 100:
		return "video not found"
	case 101, 150:
		return "video not embeddable"
	default:
		return fmt.Sprintf("widget error %d", e.Code)
	}
}

// EventHandlers is the handler bag passed to the widget at construction,
// keyed by event name.
type EventHandlers map[EventName]func(Event)

// ProxyEvents returns a handler for every event name that forwards to bus.
func ProxyEvents(bus *eventbus.Bus[Event]) EventHandlers {
	handlers := make(EventHandlers, len(EventNames))
	for _, name := range EventNames {
		handlers[name] = func(e Event) {
			e.Name = name
			bus.Dispatch(string(name), e)
		}
	}
	return handlers
}

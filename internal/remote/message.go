package remote

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/sharetube/playerbridge/internal/ytplayer"
)

// Message types sent by hosts.
const (
	TypeMounts = "MOUNTS"
	TypeEvent  = "EVENT"
	TypeResult = "RESULT"
	TypeAlive  = "ALIVE"
)

// Message types sent to hosts.
const (
	TypeConstruct = "CONSTRUCT"
	TypeCall      = "CALL"
	TypeError     = "ERROR"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type EmptyInput struct{}

type MountsInput struct {
	Mounts []string `json:"mounts"`
}

// EventInput carries a widget event. Data is the numeric state for
// stateChange and ready, the error code for error, and the raw value for
// everything else.
type EventInput struct {
	PlayerID string          `json:"player_id"`
	Name     string          `json:"name"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type ResultInput struct {
	CallID      string          `json:"call_id"`
	Value       json.RawMessage `json:"value,omitempty"`
	Error       string          `json:"error,omitempty"`
	Unsupported bool            `json:"unsupported,omitempty"`
}

type constructOptions struct {
	ytplayer.Options
	// Events lists the handler names the host must forward, e.g. "onReady".
	Events []string `json:"events"`
}

type ConstructOutput struct {
	PlayerID string           `json:"player_id"`
	Mount    string           `json:"mount"`
	Options  constructOptions `json:"options"`
}

type CallOutput struct {
	CallID   string `json:"call_id"`
	PlayerID string `json:"player_id"`
	Command  string `json:"command"`
	Args     []any  `json:"args"`
}

type ErrorOutput struct {
	Message string `json:"message"`
}

func newConstructOptions(opts ytplayer.Options) constructOptions {
	return constructOptions{
		Options: opts,
		Events: lo.FilterMap(ytplayer.EventNames, func(name ytplayer.EventName, _ int) (string, bool) {
			_, ok := opts.Events[name]
			return name.HandlerName(), ok
		}),
	}
}

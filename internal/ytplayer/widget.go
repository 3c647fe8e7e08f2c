package ytplayer

import (
	"context"
	"errors"
)

var ErrUnsupportedCommand = errors.New("command not supported by widget")

// Widget is a live player instance.
type Widget interface {
	// Call invokes cmd on the instance. It returns ErrUnsupportedCommand when
	// the instance does not expose cmd.
	Call(ctx context.Context, cmd Command, args ...any) (any, error)
	// PlayerState reads the instance's current state code.
	PlayerState() State
	// AddEventListener registers fn for name directly on the instance and
	// returns a func that removes it.
	AddEventListener(name EventName, fn func(Event)) (remove func())
}

// Constructor builds new widget instances inside a mount point.
type Constructor interface {
	NewWidget(ctx context.Context, mount string, opts Options) (Widget, error)
}

// MountResolver reports whether a mount point currently exists.
type MountResolver interface {
	HasMount(mount string) bool
}

// PlayerVars are the embed parameters of the widget.
type PlayerVars struct {
	Autoplay       bool   `json:"autoplay,omitempty"`
	CCLoadPolicy   bool   `json:"cc_load_policy,omitempty"`
	Color          string `json:"color,omitempty" validate:"omitempty,oneof=red white"`
	Controls       *bool  `json:"controls,omitempty"`
	DisableKB      bool   `json:"disablekb,omitempty"`
	End            int    `json:"end,omitempty" validate:"gte=0"`
	FS             *bool  `json:"fs,omitempty"`
	List           string `json:"list,omitempty"`
	ListType       string `json:"listType,omitempty" validate:"omitempty,oneof=user_uploads playlist"`
	Loop           bool   `json:"loop,omitempty"`
	ModestBranding bool   `json:"modestbranding,omitempty"`
	Origin         string `json:"origin,omitempty" validate:"omitempty,url"`
	Playlist       string `json:"playlist,omitempty"`
	PlaysInline    bool   `json:"playsinline,omitempty"`
	Rel            *bool  `json:"rel,omitempty"`
	Start          int    `json:"start,omitempty" validate:"gte=0"`
	WidgetReferrer string `json:"widget_referrer,omitempty" validate:"omitempty,url"`
}

// Options is the construction options bag. Events is reserved for the
// factory. Callbacks are bound to the facade before any asynchronous work
// starts, so they observe every event including early errors.
type Options struct {
	PlayerVars PlayerVars    `json:"playerVars"`
	VideoID    string        `json:"videoId,omitempty" validate:"omitempty,len=11"`
	Width      string        `json:"width,omitempty" validate:"max=16"`
	Height     string        `json:"height,omitempty" validate:"max=16"`
	Events     EventHandlers `json:"-"`
	Callbacks  Callbacks     `json:"-"`
}

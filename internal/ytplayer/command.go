package ytplayer

import (
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Command identifies one operation of the widget's control surface.
type Command int

const (
	CmdCueVideoByID Command = iota
	CmdLoadVideoByID
	CmdCueVideoByURL
	CmdLoadVideoByURL
	CmdPlayVideo
	CmdPauseVideo
	CmdStopVideo
	CmdGetVideoLoadedFraction
	CmdCuePlaylist
	CmdLoadPlaylist
	CmdNextVideo
	CmdPreviousVideo
	CmdPlayVideoAt
	CmdSetShuffle
	CmdSetLoop
	CmdGetPlaylist
	CmdGetPlaylistIndex
	CmdSetOption
	CmdMute
	CmdUnMute
	CmdIsMuted
	CmdSetVolume
	CmdGetVolume
	CmdSeekTo
	CmdGetPlayerState
	CmdGetPlaybackRate
	CmdSetPlaybackRate
	CmdGetAvailablePlaybackRates
	CmdGetPlaybackQuality
	CmdSetPlaybackQuality
	CmdGetAvailableQualityLevels
	CmdGetCurrentTime
	CmdGetDuration
	CmdRemoveEventListener
	CmdGetVideoURL
	CmdGetVideoEmbedCode
	CmdGetOptions
	CmdGetOption
	CmdAddEventListener
	CmdDestroy
	CmdSetSize
	CmdGetIframe

	commandCount
)

// widget method names, indexed by Command
var commandNames = [commandCount]string{
	CmdCueVideoByID:              "cueVideoById",
	CmdLoadVideoByID:             "loadVideoById",
	CmdCueVideoByURL:             "cueVideoByUrl",
	CmdLoadVideoByURL:            "loadVideoByUrl",
	CmdPlayVideo:                 "playVideo",
	CmdPauseVideo:                "pauseVideo",
	CmdStopVideo:                 "stopVideo",
	CmdGetVideoLoadedFraction:    "getVideoLoadedFraction",
	CmdCuePlaylist:               "cuePlaylist",
	CmdLoadPlaylist:              "loadPlaylist",
	CmdNextVideo:                 "nextVideo",
	CmdPreviousVideo:             "previousVideo",
	CmdPlayVideoAt:               "playVideoAt",
	CmdSetShuffle:                "setShuffle",
	CmdSetLoop:                   "setLoop",
	CmdGetPlaylist:               "getPlaylist",
	CmdGetPlaylistIndex:          "getPlaylistIndex",
	CmdSetOption:                 "setOption",
	CmdMute:                      "mute",
	CmdUnMute:                    "unMute",
	CmdIsMuted:                   "isMuted",
	CmdSetVolume:                 "setVolume",
	CmdGetVolume:                 "getVolume",
	CmdSeekTo:                    "seekTo",
	CmdGetPlayerState:            "getPlayerState",
	CmdGetPlaybackRate:           "getPlaybackRate",
	CmdSetPlaybackRate:           "setPlaybackRate",
	CmdGetAvailablePlaybackRates: "getAvailablePlaybackRates",
	CmdGetPlaybackQuality:        "getPlaybackQuality",
	CmdSetPlaybackQuality:        "setPlaybackQuality",
	CmdGetAvailableQualityLevels: "getAvailableQualityLevels",
	CmdGetCurrentTime:            "getCurrentTime",
	CmdGetDuration:               "getDuration",
	CmdRemoveEventListener:       "removeEventListener",
	CmdGetVideoURL:               "getVideoUrl",
	CmdGetVideoEmbedCode:         "getVideoEmbedCode",
	CmdGetOptions:                "getOptions",
	CmdGetOption:                 "getOption",
	CmdAddEventListener:          "addEventListener",
	CmdDestroy:                   "destroy",
	CmdSetSize:                   "setSize",
	CmdGetIframe:                 "getIframe",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, commandCount)
	for c := Command(0); c < commandCount; c++ {
		m[commandNames[c]] = c
	}
	return m
}()

// String returns the widget method name.
func (c Command) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return commandNames[c]
}

func (c Command) Valid() bool {
	return c >= 0 && c < commandCount
}

// ParseCommand resolves a widget method name such as "seekTo".
func ParseCommand(name string) (Command, bool) {
	c, ok := commandsByName[name]
	return c, ok
}

// Commands lists every command in declaration order.
func Commands() []Command {
	cmds := make([]Command, 0, commandCount)
	for c := Command(0); c < commandCount; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// Descriptor constrains when a command counts as settled in strict mode.
type Descriptor struct {
	// AcceptableStates are the states that satisfy the command's postcondition.
	AcceptableStates []State
	// ForcedWait requires a state transition even when the current state is
	// already acceptable. Seeking may leave the state unchanged.
	ForcedWait bool
	// Timeout bounds the wait from the moment it begins and is re-armed on
	// every transition to a state outside AcceptableStates. Absent waits for
	// an acceptable state.
	Timeout mo.Option[time.Duration]
}

func (d Descriptor) Accepts(s State) bool {
	return lo.Contains(d.AcceptableStates, s)
}

// Descriptor returns the state constraint for c. Most commands have none.
func (c Command) Descriptor() (Descriptor, bool) {
	switch c {
	case CmdPauseVideo:
		return Descriptor{
			AcceptableStates: []State{StateEnded, StatePaused},
			Timeout:          mo.None[time.Duration](),
		}, true
	case CmdPlayVideo:
		return Descriptor{
			AcceptableStates: []State{StateEnded, StatePlaying},
			Timeout:          mo.Some(time.Duration(0)),
		}, true
	case CmdSeekTo:
		return Descriptor{
			AcceptableStates: []State{StateEnded, StatePlaying, StatePaused},
			ForcedWait:       true,
			Timeout:          mo.Some(3 * time.Second),
		}, true
	default:
		return Descriptor{}, false
	}
}

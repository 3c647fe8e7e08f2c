package ytplayer

import "context"

// VideoByID selects a video by its id for cue/load.
type VideoByID struct {
	VideoID          string  `json:"videoId"`
	StartSeconds     float64 `json:"startSeconds,omitempty"`
	EndSeconds       float64 `json:"endSeconds,omitempty"`
	SuggestedQuality string  `json:"suggestedQuality,omitempty"`
}

// VideoByURL selects a video by its media content url for cue/load.
type VideoByURL struct {
	MediaContentURL  string  `json:"mediaContentUrl"`
	StartSeconds     float64 `json:"startSeconds,omitempty"`
	EndSeconds       float64 `json:"endSeconds,omitempty"`
	SuggestedQuality string  `json:"suggestedQuality,omitempty"`
}

// PlaylistRequest selects a playlist for cue/load.
type PlaylistRequest struct {
	ListType         string  `json:"listType,omitempty"`
	List             string  `json:"list"`
	Index            int     `json:"index,omitempty"`
	StartSeconds     float64 `json:"startSeconds,omitempty"`
	SuggestedQuality string  `json:"suggestedQuality,omitempty"`
}

// Queueing

func (f *Facade) CueVideoByID(ctx context.Context, v VideoByID) *Future[any] {
	return f.Call(ctx, CmdCueVideoByID, v)
}

func (f *Facade) LoadVideoByID(ctx context.Context, v VideoByID) *Future[any] {
	return f.Call(ctx, CmdLoadVideoByID, v)
}

func (f *Facade) CueVideoByURL(ctx context.Context, v VideoByURL) *Future[any] {
	return f.Call(ctx, CmdCueVideoByURL, v)
}

func (f *Facade) LoadVideoByURL(ctx context.Context, v VideoByURL) *Future[any] {
	return f.Call(ctx, CmdLoadVideoByURL, v)
}

func (f *Facade) CuePlaylist(ctx context.Context, p PlaylistRequest) *Future[any] {
	return f.Call(ctx, CmdCuePlaylist, p)
}

func (f *Facade) LoadPlaylist(ctx context.Context, p PlaylistRequest) *Future[any] {
	return f.Call(ctx, CmdLoadPlaylist, p)
}

// Playback

func (f *Facade) PlayVideo(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdPlayVideo)
}

func (f *Facade) PauseVideo(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdPauseVideo)
}

func (f *Facade) StopVideo(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdStopVideo)
}

func (f *Facade) SeekTo(ctx context.Context, seconds float64, allowSeekAhead bool) *Future[any] {
	return f.Call(ctx, CmdSeekTo, seconds, allowSeekAhead)
}

// Playlist navigation

func (f *Facade) NextVideo(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdNextVideo)
}

func (f *Facade) PreviousVideo(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdPreviousVideo)
}

func (f *Facade) PlayVideoAt(ctx context.Context, index int) *Future[any] {
	return f.Call(ctx, CmdPlayVideoAt, index)
}

func (f *Facade) SetShuffle(ctx context.Context, shuffle bool) *Future[any] {
	return f.Call(ctx, CmdSetShuffle, shuffle)
}

func (f *Facade) SetLoop(ctx context.Context, loop bool) *Future[any] {
	return f.Call(ctx, CmdSetLoop, loop)
}

func (f *Facade) GetPlaylist(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetPlaylist)
}

func (f *Facade) GetPlaylistIndex(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetPlaylistIndex)
}

// Volume

func (f *Facade) Mute(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdMute)
}

func (f *Facade) UnMute(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdUnMute)
}

func (f *Facade) IsMuted(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdIsMuted)
}

func (f *Facade) SetVolume(ctx context.Context, volume int) *Future[any] {
	return f.Call(ctx, CmdSetVolume, volume)
}

func (f *Facade) GetVolume(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetVolume)
}

// Rate and quality

func (f *Facade) GetPlaybackRate(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetPlaybackRate)
}

func (f *Facade) SetPlaybackRate(ctx context.Context, rate float64) *Future[any] {
	return f.Call(ctx, CmdSetPlaybackRate, rate)
}

func (f *Facade) GetAvailablePlaybackRates(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetAvailablePlaybackRates)
}

func (f *Facade) GetPlaybackQuality(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetPlaybackQuality)
}

func (f *Facade) SetPlaybackQuality(ctx context.Context, quality string) *Future[any] {
	return f.Call(ctx, CmdSetPlaybackQuality, quality)
}

func (f *Facade) GetAvailableQualityLevels(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetAvailableQualityLevels)
}

// Playback status

func (f *Facade) GetPlayerState(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetPlayerState)
}

func (f *Facade) GetCurrentTime(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetCurrentTime)
}

func (f *Facade) GetDuration(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetDuration)
}

func (f *Facade) GetVideoLoadedFraction(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetVideoLoadedFraction)
}

// Video information

func (f *Facade) GetVideoURL(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetVideoURL)
}

func (f *Facade) GetVideoEmbedCode(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetVideoEmbedCode)
}

// Module options

func (f *Facade) GetOptions(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetOptions)
}

func (f *Facade) GetOption(ctx context.Context, module, option string) *Future[any] {
	return f.Call(ctx, CmdGetOption, module, option)
}

func (f *Facade) SetOption(ctx context.Context, module, option string, value any) *Future[any] {
	return f.Call(ctx, CmdSetOption, module, option, value)
}

// Instance

func (f *Facade) AddEventListener(ctx context.Context, name EventName, fn func(Event)) *Future[any] {
	return f.Call(ctx, CmdAddEventListener, name, fn)
}

func (f *Facade) RemoveEventListener(ctx context.Context, name EventName, fn func(Event)) *Future[any] {
	return f.Call(ctx, CmdRemoveEventListener, name, fn)
}

func (f *Facade) SetSize(ctx context.Context, width, height int) *Future[any] {
	return f.Call(ctx, CmdSetSize, width, height)
}

func (f *Facade) GetIframe(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdGetIframe)
}

func (f *Facade) Destroy(ctx context.Context) *Future[any] {
	return f.Call(ctx, CmdDestroy)
}

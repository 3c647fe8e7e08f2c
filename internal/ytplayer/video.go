package ytplayer

import (
	"context"
	"strings"
)

// VideoRequest describes the video a player should show.
type VideoRequest struct {
	VideoID  string
	Autoplay bool
	Start    int
	End      int
}

// VideoRequestFromOptions builds the request a freshly configured player
// would issue. videoID wins over opts.VideoID when set.
func VideoRequestFromOptions(videoID string, opts Options) VideoRequest {
	if videoID == "" {
		videoID = opts.VideoID
	}

	return VideoRequest{
		VideoID:  videoID,
		Autoplay: opts.PlayerVars.Autoplay,
		Start:    opts.PlayerVars.Start,
		End:      opts.PlayerVars.End,
	}
}

// UpdateVideo switches the player to req. An empty video id stops playback.
// With autoplay the video is loaded, otherwise it is only cued.
func UpdateVideo(ctx context.Context, f *Facade, req VideoRequest) *Future[any] {
	if req.VideoID == "" {
		return f.StopVideo(ctx)
	}

	v := VideoByID{VideoID: req.VideoID}
	if req.Start > 0 {
		v.StartSeconds = float64(req.Start)
	}
	if req.End > 0 {
		v.EndSeconds = float64(req.End)
	}

	if req.Autoplay {
		return f.LoadVideoByID(ctx, v)
	}

	return f.CueVideoByID(ctx, v)
}

// CurrentVideoID extracts the video id from a widget video url such as
// "https://www.youtube.com/watch?v=M7lc1UVf-VE". It returns "" when the url
// carries none.
func CurrentVideoID(videoURL string) string {
	_, after, ok := strings.Cut(videoURL, "v=")
	if !ok {
		return ""
	}

	id, _, _ := strings.Cut(after, "&")
	return id
}

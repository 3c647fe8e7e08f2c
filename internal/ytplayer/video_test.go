package ytplayer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateVideo(t *testing.T) {
	tests := []struct {
		name    string
		req     VideoRequest
		cmd     Command
		payload any
	}{
		{
			name: "empty id stops",
			req:  VideoRequest{Autoplay: true},
			cmd:  CmdStopVideo,
		},
		{
			name:    "cue without autoplay",
			req:     VideoRequest{VideoID: "M7lc1UVf-VE"},
			cmd:     CmdCueVideoByID,
			payload: VideoByID{VideoID: "M7lc1UVf-VE"},
		},
		{
			name:    "load with autoplay and bounds",
			req:     VideoRequest{VideoID: "M7lc1UVf-VE", Autoplay: true, Start: 10, End: 20},
			cmd:     CmdLoadVideoByID,
			payload: VideoByID{VideoID: "M7lc1UVf-VE", StartSeconds: 10, EndSeconds: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewMockWidget()
			f := newReadyFacade(w, false)

			_, err := UpdateVideo(context.Background(), f, tt.req).Await(context.Background())
			require.NoError(t, err)

			calls := w.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.cmd, calls[0].Command)
			if tt.payload != nil {
				assert.Equal(t, []any{tt.payload}, calls[0].Args)
			}
		})
	}
}

func TestVideoRequestFromOptions(t *testing.T) {
	opts := Options{
		VideoID:    "M7lc1UVf-VE",
		PlayerVars: PlayerVars{Autoplay: true, Start: 5},
	}

	assert.Equal(t, VideoRequest{VideoID: "M7lc1UVf-VE", Autoplay: true, Start: 5}, VideoRequestFromOptions("", opts))
	assert.Equal(t, "dQw4w9WgXcQ", VideoRequestFromOptions("dQw4w9WgXcQ", opts).VideoID)
}

func TestCurrentVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=M7lc1UVf-VE", "M7lc1UVf-VE"},
		{"https://www.youtube.com/watch?v=M7lc1UVf-VE&t=42", "M7lc1UVf-VE"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentVideoID(tt.url), tt.url)
	}
}

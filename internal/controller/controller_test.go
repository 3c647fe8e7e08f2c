package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sharetube/playerbridge/internal/remote"
	"github.com/sharetube/playerbridge/internal/service/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/wsrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	created  *player.CreatePlayerParams
	command  *player.CommandParams
	video    *player.UpdateVideoParams
	removed  string
	err      error
	script   []byte
	response any
}

func (f *fakeService) CreatePlayer(_ context.Context, p *player.CreatePlayerParams) (player.CreatePlayerResponse, error) {
	f.created = p
	return player.CreatePlayerResponse{PlayerID: "p1"}, f.err
}

func (f *fakeService) GetPlayer(_ context.Context, id string) (player.GetPlayerResponse, error) {
	return player.GetPlayerResponse{PlayerID: id, Ready: true}, f.err
}

func (f *fakeService) RemovePlayer(_ context.Context, id string) error {
	f.removed = id
	return f.err
}

func (f *fakeService) Command(_ context.Context, p *player.CommandParams) (any, error) {
	f.command = p
	return f.response, f.err
}

func (f *fakeService) UpdateVideo(_ context.Context, p *player.UpdateVideoParams) error {
	f.video = p
	return f.err
}

func (f *fakeService) GetVideoData(_ context.Context, id string) (player.GetVideoDataResponse, error) {
	return player.GetVideoDataResponse{VideoID: "M7lc1UVf-VE"}, f.err
}

func (f *fakeService) Script(context.Context) ([]byte, error) {
	return f.script, f.err
}

type fakeHub struct {
	served chan struct{}
}

func (f *fakeHub) ServeConn(ctx context.Context, conn *websocket.Conn, mws ...wsrouter.Middleware) error {
	close(f.served)
	defer conn.Close()
	_, _, err := conn.ReadMessage()
	return err
}

func newTestServer(t *testing.T, svc *fakeService, hub *fakeHub) *httptest.Server {
	t.Helper()

	if hub == nil {
		hub = &fakeHub{served: make(chan struct{})}
	}
	srv := httptest.NewServer(NewController(svc, hub, nil).GetMux())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakeService{}, nil)

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/v1/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePlayer(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc, nil)

	resp, out := do(t, http.MethodPost, srv.URL+"/api/v1/players",
		`{"mount":"player-1","strict_state":true,"options":{"videoId":"M7lc1UVf-VE","playerVars":{"autoplay":true,"start":5}}}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]any{"player_id": "p1"}, out["data"])
	assert.Equal(t, "player-1", svc.created.Mount)
	assert.True(t, svc.created.StrictState)
	assert.Equal(t, "M7lc1UVf-VE", svc.created.Options.VideoID)
	assert.Equal(t, ytplayer.PlayerVars{Autoplay: true, Start: 5}, svc.created.Options.PlayerVars)
}

func TestCreatePlayerValidation(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc, nil)

	resp, out := do(t, http.MethodPost, srv.URL+"/api/v1/players", `{"options":{"videoId":"short"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, out["errors"], 2)
	assert.Nil(t, svc.created)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/players", `{"mount":"player-1","events":{}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{player.ErrPlayerNotFound, http.StatusNotFound},
		{player.ErrUnknownCommand, http.StatusBadRequest},
		{ytplayer.ErrMountNotFound, http.StatusUnprocessableEntity},
		{ytplayer.ErrReadyTimeout, http.StatusGatewayTimeout},
		{remote.ErrHostGone, http.StatusServiceUnavailable},
		{&remote.CallError{Command: "seekTo", Message: "x"}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			srv := newTestServer(t, &fakeService{err: tt.err}, nil)

			resp, out := do(t, http.MethodGet, srv.URL+"/api/v1/players/p1", "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.err.Error(), out["error"])
		})
	}
}

func TestRunCommand(t *testing.T) {
	svc := &fakeService{response: float64(30)}
	srv := newTestServer(t, svc, nil)

	resp, out := do(t, http.MethodPost, srv.URL+"/api/v1/players/p1/commands/setVolume", `{"args":[30]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"command": "setVolume", "result": float64(30)}, out["data"])
	assert.Equal(t, "p1", svc.command.PlayerID)
	assert.Equal(t, []any{float64(30)}, svc.command.Args)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/players/p1/commands/playVideo", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.command.Args)
}

func TestVideoRoutes(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc, nil)

	resp, _ := do(t, http.MethodPut, srv.URL+"/api/v1/players/p1/video", `{"video_id":"M7lc1UVf-VE","autoplay":true}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, &player.UpdateVideoParams{PlayerID: "p1", VideoID: "M7lc1UVf-VE", Autoplay: true}, svc.video)

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/v1/players/p1/video", `{"start":-1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, out := do(t, http.MethodGet, srv.URL+"/api/v1/players/p1/video", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "M7lc1UVf-VE", out["data"].(map[string]any)["video_id"])

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/v1/players/p1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "p1", svc.removed)
}

func TestGetScript(t *testing.T) {
	srv := newTestServer(t, &fakeService{script: []byte("var YT;")}, nil)

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/v1/iframe_api", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/javascript")
}

func TestConnectHost(t *testing.T) {
	hub := &fakeHub{served: make(chan struct{})}
	srv := newTestServer(t, &fakeService{}, hub)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/ws/host", nil)
	require.NoError(t, err)
	defer conn.Close()

	<-hub.served
}

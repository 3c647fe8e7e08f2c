package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/playerbridge/internal/repository/host/inmemory"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type wireMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type fakeHost struct {
	t    *testing.T
	conn *websocket.Conn
}

func newTestHub(t *testing.T, cfg *Config) (*Hub, string) {
	t.Helper()

	hub := NewHub(inmemory.NewRepo[*Host](nil), cfg, nil)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeConn(context.Background(), conn)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialHost(t *testing.T, hub *Hub, url string, mounts ...string) *fakeHost {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	h := &fakeHost{t: t, conn: conn}
	if len(mounts) > 0 {
		h.send(TypeMounts, MountsInput{Mounts: mounts})
		require.Eventually(t, func() bool { return hub.HasMount(mounts[0]) }, waitFor, 5*time.Millisecond)
	}

	return h
}

func (h *fakeHost) send(typ string, payload any) {
	h.t.Helper()
	require.NoError(h.t, h.conn.WriteJSON(Output{Type: typ, Payload: payload}))
}

func (h *fakeHost) read(typ string, dst any) {
	h.t.Helper()

	require.NoError(h.t, h.conn.SetReadDeadline(time.Now().Add(waitFor)))
	var msg wireMessage
	require.NoError(h.t, h.conn.ReadJSON(&msg))
	require.Equal(h.t, typ, msg.Type, string(msg.Payload))
	if dst != nil {
		require.NoError(h.t, json.Unmarshal(msg.Payload, dst))
	}
}

func (h *fakeHost) answer(value any) CallOutput {
	h.t.Helper()

	var call CallOutput
	h.read(TypeCall, &call)

	raw, err := json.Marshal(value)
	require.NoError(h.t, err)
	h.send(TypeResult, ResultInput{CallID: call.CallID, Value: raw})
	return call
}

func newTestFactory(hub *Hub) *ytplayer.Factory {
	loader := func(context.Context) (ytplayer.Constructor, error) { return hub, nil }
	return ytplayer.NewFactory(ytplayer.NewBootstrap(loader, nil), hub, nil, nil)
}

func TestRemotePlayerLifecycle(t *testing.T) {
	hub, url := newTestHub(t, &Config{CallTimeout: waitFor})
	fake := dialHost(t, hub, url, "player-1")
	ctx := context.Background()

	f, err := newTestFactory(hub).CreatePlayer(ctx, ytplayer.Mount("player-1"), ytplayer.Options{
		VideoID:    "M7lc1UVf-VE",
		PlayerVars: ytplayer.PlayerVars{Autoplay: true},
	}, true)
	require.NoError(t, err)

	var construct struct {
		PlayerID string `json:"player_id"`
		Mount    string `json:"mount"`
		Options  struct {
			VideoID    string         `json:"videoId"`
			PlayerVars map[string]any `json:"playerVars"`
			Events     []string       `json:"events"`
		} `json:"options"`
	}
	fake.read(TypeConstruct, &construct)
	assert.Equal(t, "player-1", construct.Mount)
	assert.Equal(t, "M7lc1UVf-VE", construct.Options.VideoID)
	assert.Equal(t, true, construct.Options.PlayerVars["autoplay"])
	assert.Contains(t, construct.Options.Events, "onReady")
	assert.Contains(t, construct.Options.Events, "onStateChange")

	fake.send(TypeEvent, EventInput{PlayerID: construct.PlayerID, Name: "ready", Data: json.RawMessage("5")})

	waitCtx, cancel := context.WithTimeout(ctx, waitFor)
	defer cancel()
	w, err := f.Ready().Await(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, ytplayer.StateCued, w.PlayerState())

	// plain command with a return value
	volume := f.GetVolume(waitCtx)
	call := fake.answer(42)
	assert.Equal(t, "getVolume", call.Command)
	assert.Equal(t, construct.PlayerID, call.PlayerID)
	v, err := volume.Await(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)

	// strict pause waits for the host to report a paused state
	pause := f.PauseVideo(waitCtx)
	fake.answer(nil)
	time.Sleep(20 * time.Millisecond)
	assert.False(t, pause.Settled())

	fake.send(TypeEvent, EventInput{PlayerID: construct.PlayerID, Name: "stateChange", Data: json.RawMessage("2")})
	_, err = pause.Await(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, ytplayer.Status{IsPaused: true}, ytplayer.Classify(w))
}

func TestRemoteCallResults(t *testing.T) {
	hub, url := newTestHub(t, &Config{CallTimeout: waitFor})
	fake := dialHost(t, hub, url, "player-1")

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	w, err := hub.NewWidget(ctx, "player-1", ytplayer.Options{})
	require.NoError(t, err)
	fake.read(TypeConstruct, nil)

	t.Run("unsupported", func(t *testing.T) {
		done := make(chan error, 1)
		go func() {
			_, err := w.Call(ctx, ytplayer.CmdGetIframe)
			done <- err
		}()

		var call CallOutput
		fake.read(TypeCall, &call)
		fake.send(TypeResult, ResultInput{CallID: call.CallID, Unsupported: true})
		assert.ErrorIs(t, <-done, ytplayer.ErrUnsupportedCommand)
	})

	t.Run("host error", func(t *testing.T) {
		done := make(chan error, 1)
		go func() {
			_, err := w.Call(ctx, ytplayer.CmdSeekTo, 10, true)
			done <- err
		}()

		var call CallOutput
		fake.read(TypeCall, &call)
		assert.Equal(t, []any{float64(10), true}, call.Args)
		fake.send(TypeResult, ResultInput{CallID: call.CallID, Error: "player is gone"})

		var callErr *CallError
		require.ErrorAs(t, <-done, &callErr)
		assert.Equal(t, "seekTo", callErr.Command)
	})

	t.Run("listener commands stay local", func(t *testing.T) {
		_, err := w.Call(ctx, ytplayer.CmdAddEventListener, "onStateChange")
		assert.ErrorIs(t, err, ytplayer.ErrUnsupportedCommand)
	})
}

func TestRemoteCallTimeout(t *testing.T) {
	hub, url := newTestHub(t, &Config{CallTimeout: 50 * time.Millisecond})
	fake := dialHost(t, hub, url, "player-1")

	w, err := hub.NewWidget(context.Background(), "player-1", ytplayer.Options{})
	require.NoError(t, err)
	fake.read(TypeConstruct, nil)

	_, err = w.Call(context.Background(), ytplayer.CmdGetDuration)
	assert.ErrorIs(t, err, ErrCallTimeout)
}

func TestRemoteHostGone(t *testing.T) {
	hub, url := newTestHub(t, &Config{CallTimeout: waitFor})
	fake := dialHost(t, hub, url, "player-1")

	errs := make(chan error, 1)
	w, err := hub.NewWidget(context.Background(), "player-1", ytplayer.Options{
		Events: ytplayer.EventHandlers{
			ytplayer.EventError: func(e ytplayer.Event) { errs <- e.Err() },
		},
	})
	require.NoError(t, err)
	fake.read(TypeConstruct, nil)

	done := make(chan error, 1)
	go func() {
		_, err := w.Call(context.Background(), ytplayer.CmdGetDuration)
		done <- err
	}()
	fake.read(TypeCall, nil)

	fake.conn.Close()

	assert.ErrorIs(t, <-done, ErrHostGone)
	assert.ErrorIs(t, <-errs, ErrHostGone)
	require.Eventually(t, func() bool { return !hub.HasMount("player-1") }, waitFor, 5*time.Millisecond)
}

func TestRemoteMountErrors(t *testing.T) {
	hub, url := newTestHub(t, nil)
	dialHost(t, hub, url, "player-1")
	second := dialHost(t, hub, url)

	second.send(TypeMounts, MountsInput{Mounts: []string{"player-1"}})

	var out ErrorOutput
	second.read(TypeError, &out)
	assert.Contains(t, out.Message, "mount point is owned by another host")

	second.send(TypeEvent, EventInput{PlayerID: "nope", Name: "ready"})
	second.read(TypeError, &out)
	assert.Contains(t, out.Message, ErrUnknownPlayer.Error())

	_, err := hub.NewWidget(context.Background(), "player-2", ytplayer.Options{})
	assert.ErrorIs(t, err, ytplayer.ErrMountNotFound)
}

func TestDecodeEventData(t *testing.T) {
	tests := []struct {
		name ytplayer.EventName
		raw  string
		want any
	}{
		{ytplayer.EventStateChange, "3", ytplayer.StateBuffering},
		{ytplayer.EventReady, "", nil},
		{ytplayer.EventError, "150", &ytplayer.WidgetError{Code: 150}},
		{ytplayer.EventPlaybackRateChange, "1.5", 1.5},
		{ytplayer.EventPlaybackQualityChange, `"hd720"`, "hd720"},
		{ytplayer.EventVolumeChange, `{"volume":30}`, map[string]any{"volume": float64(30)}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := decodeEventData(tt.name, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := decodeEventData(ytplayer.EventStateChange, nil)
	assert.Error(t, err)
}

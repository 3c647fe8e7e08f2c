package wsrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingInput struct {
	Seq int `json:"seq"`
}

func serve(t *testing.T, r *WSRouter) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		r.ServeConn(context.Background(), conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestServeConnRoutes(t *testing.T) {
	got := make(chan string, 4)

	r := New()
	r.Use(func(next HandlerFunc[any]) HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, payload any) error {
			got <- "mw:" + GetMessageTypeFromCtx(ctx)
			return next(ctx, conn, payload)
		}
	})
	AddRoute(r, "PING", func(_ context.Context, conn *websocket.Conn, in pingInput) error {
		return conn.WriteJSON(map[string]int{"seq": in.Seq})
	})
	r.OnError(func(_ context.Context, _ *websocket.Conn, err error) {
		got <- err.Error()
	})

	conn := serve(t, r)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "PING", "payload": map[string]int{"seq": 7}}))

	var reply map[string]int
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, 7, reply["seq"])
	assert.Equal(t, "mw:PING", <-got)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "NOPE"}))
	assert.Contains(t, <-got, ErrUnknownMessageType.Error())

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "PING", "payload": "garbage"}))
	assert.Contains(t, <-got, "failed to decode PING payload")
}

func TestGetMessageTypeFromEmptyCtx(t *testing.T) {
	assert.Equal(t, "", GetMessageTypeFromCtx(context.Background()))
}

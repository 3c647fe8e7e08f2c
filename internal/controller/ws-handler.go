package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

// connectHost upgrades a widget host page and hands it to the hub until it
// disconnects.
func (c controller) connectHost(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	err = c.hub.ServeConn(r.Context(), conn, c.wsRequestIdWSMw(), c.loggerWSMw())
	var closeErr *websocket.CloseError
	if err != nil && !errors.As(err, &closeErr) {
		c.logger.InfoContext(r.Context(), "failed to serve conn", "error", err)
	}
}

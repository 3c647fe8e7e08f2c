package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sharetube/playerbridge/internal/remote"
	"github.com/sharetube/playerbridge/internal/service/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/rest"
)

// generateTimeBasedId returns a uuid v7, sortable by creation time.
func (c controller) generateTimeBasedId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func (c controller) getPlayerID(r *http.Request) string {
	return chi.URLParam(r, "player-id")
}

func (c controller) errorStatus(err error) int {
	var callErr *remote.CallError
	switch {
	case errors.Is(err, player.ErrPlayerNotFound), errors.Is(err, player.ErrNoVideo):
		return http.StatusNotFound
	case errors.Is(err, player.ErrUnknownCommand):
		return http.StatusBadRequest
	case errors.Is(err, ytplayer.ErrMountNotFound),
		errors.Is(err, ytplayer.ErrEmptyTarget),
		errors.Is(err, ytplayer.ErrEventsReserved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, ytplayer.ErrReadyTimeout),
		errors.Is(err, remote.ErrCallTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, remote.ErrHostGone),
		errors.Is(err, ytplayer.ErrClosed),
		errors.Is(err, player.ErrNoScript):
		return http.StatusServiceUnavailable
	case errors.As(err, &callErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (c controller) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := c.errorStatus(err)
	if status >= http.StatusInternalServerError {
		c.logger.WarnContext(r.Context(), "request failed", "error", err, "status", status)
	} else {
		c.logger.InfoContext(r.Context(), "request rejected", "error", err, "status", status)
	}

	rest.WriteJSON(w, status, rest.Envelope{"error": err.Error()})
}

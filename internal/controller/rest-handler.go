package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharetube/playerbridge/internal/service/player"
	"github.com/sharetube/playerbridge/internal/ytplayer"
	"github.com/sharetube/playerbridge/pkg/rest"
)

type createPlayerInput struct {
	Mount       string           `json:"mount" validate:"required,max=64"`
	Options     ytplayer.Options `json:"options"`
	StrictState bool             `json:"strict_state"`
}

type createPlayerResponse struct {
	PlayerID string `json:"player_id"`
}

func (c controller) createPlayer(w http.ResponseWriter, r *http.Request) {
	var input createPlayerInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.InfoContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(r.Context(), "invalid input", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	resp, err := c.playerService.CreatePlayer(r.Context(), &player.CreatePlayerParams{
		Mount:       input.Mount,
		Options:     input.Options,
		StrictState: input.StrictState,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"data": createPlayerResponse{
		PlayerID: resp.PlayerID,
	}})
}

func (c controller) getPlayer(w http.ResponseWriter, r *http.Request) {
	resp, err := c.playerService.GetPlayer(r.Context(), c.getPlayerID(r))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": resp})
}

func (c controller) removePlayer(w http.ResponseWriter, r *http.Request) {
	if err := c.playerService.RemovePlayer(r.Context(), c.getPlayerID(r)); err != nil {
		c.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type runCommandInput struct {
	Args []any `json:"args"`
}

type runCommandResponse struct {
	Command string `json:"command"`
	Result  any    `json:"result"`
}

func (c controller) runCommand(w http.ResponseWriter, r *http.Request) {
	var input runCommandInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.InfoContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	command := chi.URLParam(r, "command")
	result, err := c.playerService.Command(r.Context(), &player.CommandParams{
		PlayerID: c.getPlayerID(r),
		Command:  command,
		Args:     input.Args,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": runCommandResponse{
		Command: command,
		Result:  result,
	}})
}

type updateVideoInput struct {
	VideoID  string `json:"video_id" validate:"omitempty,len=11"`
	Autoplay bool   `json:"autoplay"`
	Start    int    `json:"start" validate:"gte=0"`
	End      int    `json:"end" validate:"gte=0"`
}

func (c controller) updateVideo(w http.ResponseWriter, r *http.Request) {
	var input updateVideoInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.InfoContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(r.Context(), "invalid input", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	if err := c.playerService.UpdateVideo(r.Context(), &player.UpdateVideoParams{
		PlayerID: c.getPlayerID(r),
		VideoID:  input.VideoID,
		Autoplay: input.Autoplay,
		Start:    input.Start,
		End:      input.End,
	}); err != nil {
		c.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c controller) getVideo(w http.ResponseWriter, r *http.Request) {
	resp, err := c.playerService.GetVideoData(r.Context(), c.getPlayerID(r))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": resp})
}

func (c controller) getScript(w http.ResponseWriter, r *http.Request) {
	script, err := c.playerService.Script(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(script)
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/huyqng/battleship-server/http_utils"
)

const tokenDuration = 24 * time.Hour

type usernameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
}

// TokenHandler issues a guest token for the username in the request body.
// The token authenticates the websocket upgrade at /ws.
func (s *Server) TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http_utils.SendResponse(w, http.StatusMethodNotAllowed, http_utils.NewBaseResponse(false, "method not allowed"))
		return
	}

	var data usernameRequest

	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http_utils.SendResponse(w, http.StatusBadRequest, http_utils.NewBaseResponse(false, "invalid body, username required"))
		return
	}

	vErr := http_utils.ValidateStruct(s.validate, data)

	if !reflect.ValueOf(vErr).IsZero() {
		http_utils.SendResponse(w, http.StatusBadRequest, vErr)
		return
	}

	tok, payload, err := s.tokenMaker.CreateToken(data.Username, tokenDuration)

	if err != nil {
		slog.Error("creating token", "error", err)
		http_utils.SendResponse(w, http.StatusInternalServerError, http_utils.NewBaseResponse(false, "something went wrong"))
		return
	}

	http_utils.SendResponse(w, http.StatusOK, http_utils.DataResponse{
		BaseResponse: http_utils.NewBaseResponse(true, "token created"),
		Data: map[string]string{
			"id":       payload.ID.String(),
			"username": payload.Username,
			"token":    tok,
		},
	})
}

// MatchesHandler serves the recent finished matches recorded in history.
func (s *Server) MatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := s.recorder.Recent(r.Context(), 20)

	if err != nil {
		slog.Error("loading match history", "error", err)
		http_utils.SendResponse(w, http.StatusInternalServerError, http_utils.NewBaseResponse(false, "could not load matches"))
		return
	}

	http_utils.SendResponse(w, http.StatusOK, http_utils.DataResponse{
		BaseResponse: http_utils.NewBaseResponse(true, "recent matches"),
		Data:         matches,
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	http_utils.SendResponse(w, http.StatusOK, http_utils.NewBaseResponse(true, "ok"))
}

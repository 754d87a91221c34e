package handler

import (
	"net/http"

	"pongarena/internal/app/game"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/randx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

// roomCodeRetries bounds how many generated codes are tried before giving up.
const roomCodeRetries = 5

// HandleCreateRoom allocates a fresh room code and starts the room loop.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		for attempt := 0; attempt < roomCodeRetries; attempt++ {
			code, err := randx.RoomCode()
			if err != nil {
				logx.Error(err, "create room: code generation failed")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			room, customErr := deps.Rooms.CreateRoom(code, game.PlayersMaxClients)
			if customErr != nil {
				if customErr.Code == errs.ErrRoomCodeExists {
					continue
				}
				resp.RespondError(w, r, customErr)
				return
			}

			resp.RespondSuccess(w, r, map[string]any{
				"roomCode": room.Code,
			})
			return
		}

		logx.Warn("Exhausted room code generation retries")
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
	}
}

type JoinRoomInput struct {
	RoomCode string `json:"roomCode"`
}

// HandleJoinRoom validates that a room exists and has capacity. The actual
// connection happens over the websocket endpoint.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input JoinRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidRoomCode(input.RoomCode) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room := deps.Rooms.GetRoom(input.RoomCode)
		if room == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		if room.IsFull() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomIsFull))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomCode": room.Code,
		})
	}
}

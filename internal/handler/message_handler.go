package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pongarena/internal/app/game"
	"pongarena/internal/app/message"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/randx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

type PostMessageInput struct {
	RoomCode string `json:"roomCode"`
	Body     string `json:"body"`
}

// HandlePostMessage persists a chat message for a room and, when the room is
// live, fans it out to the connected clients.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PostMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidRoomCode(input.RoomCode) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		msg := &message.Message{
			RoomCode: input.RoomCode,
			SenderID: u.ID,
			Body:     input.Body,
		}
		if err := msg.Validate(); err != nil {
			if errors.Is(err, message.ErrBodyTooLong) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMessageTooLong))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		stored, err := deps.Messages.Append(r.Context(), msg)
		if err != nil {
			logx.Error(err, "post message: insert failed", "user_id", u.ID, "room_code", input.RoomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if room := deps.Rooms.GetRoom(input.RoomCode); room != nil {
			room.Broadcast(&game.Event{
				Type:     game.EventChat,
				RoomCode: stored.RoomCode,
				SenderID: u.ID,
				Sender:   u.Username,
				Data:     mustRawString(stored.Body),
				SentAt:   stored.SentAt,
			})
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": stored,
		})
	}
}

// mustRawString wraps a plain string as a JSON value.
func mustRawString(s string) json.RawMessage {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return raw
}

// HandleMessageHistory returns a room's recent messages in chronological order.
// Accepts ?room= (required) and ?limit= (optional, clamped).
func HandleMessageHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomCode := r.URL.Query().Get("room")
		if !randx.IsValidRoomCode(roomCode) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			limit = parsed
		}

		messages, err := deps.Messages.History(r.Context(), roomCode, message.ClampLimit(limit))
		if err != nil {
			logx.Error(err, "message history: query failed", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": messages,
		})
	}
}

/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
authenticating the session token, validating the room, upgrading the HTTP connection to
WebSocket, and initiating the client lifecycle.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"pongarena/internal/app/game"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/limiter"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/randx"
	"pongarena/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// Browsers cannot set an Authorization header on a websocket handshake, so the
// session token arrives as a ?token= query parameter instead.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		roomCode := chi.URLParam(r, "code")
		if !randx.IsValidRoomCode(roomCode) {
			logx.Warn("WebSocket request rejected: Invalid room code")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		token := r.URL.Query().Get("token")
		if token == "" {
			logx.Warn("WebSocket request rejected: Missing token query parameter", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u, customErr := deps.Gateway.Resolve(r.Context(), token)
		if customErr != nil {
			logx.Info("WebSocket connection rejected: Session resolution failed.", "room_code", roomCode)
			resp.RespondError(w, r, customErr)
			return
		}

		room := deps.Rooms.GetRoom(roomCode)
		if room == nil {
			logx.Info("WebSocket connection rejected: Room not found.", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}
		if room.IsFull() {
			logx.Info("WebSocket connection rejected: Room is full.", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomIsFull))
			return
		}

		logx.Info("Attempting to upgrade connection", "room_code", roomCode, "user_id", u.ID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := game.NewClient(room, conn, u.ID, u.Username)

		go client.WritePump()

		logx.Info("WebSocket connection established and client registered", "user_id", u.ID, "room_code", roomCode)

		room.RegisterClient(client)

		client.ReadPump()
	}
}

/*
Package handler provides the HTTP handlers and routing setup for the PongArena server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"pongarena/internal/pkg/limiter"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/resp"
)

const (
	// AuthRate and AuthBurst throttle the credential endpoints per IP.
	AuthRate  = 0.5
	AuthBurst = 5

	CreateRate  = 0.05
	CreateBurst = 2
	JoinRate    = 0.2
	JoinBurst   = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and
// per-route middleware. The session Gateway guards every route that needs an
// authenticated caller.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "PongArena Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimiter.Middleware)

			auth.Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/2fa/verify", HandleTwoFAVerify(deps))
			auth.Post("/forgot-password", HandleForgotPassword(deps))
		})

		// Everything below requires a live session.
		api.Group(func(authed chi.Router) {
			authed.Use(deps.Gateway.Require)

			authed.Post("/auth/logout", HandleLogout(deps))
			authed.Post("/auth/reset-password", HandleResetPassword(deps))

			authed.Get("/users", HandleListUsers(deps))
			authed.Get("/users/{id}", HandleGetUser(deps))

			authed.Route("/user", func(me chi.Router) {
				me.Get("/profile", HandleGetProfile(deps))
				me.Post("/password", HandleUpdatePassword(deps))
				me.Post("/username", HandleUpdateUsername(deps))
				me.Post("/email", HandleUpdateEmail(deps))
				me.Post("/2fa", HandleUpdateTwoFA(deps))
				me.Post("/avatar", HandleUploadAvatar(deps))
				me.Get("/avatar/download", HandleAvatarDownloadURL(deps))
			})

			authed.Get("/matches", HandleMatchHistory(deps))
			authed.Post("/matches", HandleRecordMatch(deps))

			authed.Get("/messages", HandleMessageHistory(deps))
			authed.Post("/messages", HandlePostMessage(deps))

			rateLimitedCreateHandler := createLimiter.Middleware(HandleCreateRoom(deps))
			authed.Post("/rooms", http.HandlerFunc(rateLimitedCreateHandler.ServeHTTP))
			authed.Post("/rooms/join", HandleJoinRoom(deps))
		})
	})

	r.Get("/ws/{code}", HandleWebSocket(wsUpgrader, joinLimiter, deps))

	return r
}

package handler

import (
	"pongarena/internal/app/game"
	"pongarena/internal/app/mail"
	"pongarena/internal/app/match"
	"pongarena/internal/app/message"
	"pongarena/internal/app/storage"
	"pongarena/internal/app/user"
	"pongarena/internal/configs"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/twofa"
)

// AppDeps bundles every collaborator the handlers need. All shared state is
// injected here at startup; no handler reaches for globals.
type AppDeps struct {
	Config   *configs.AppConfig
	Users    *user.Store
	Matches  *match.Store
	Messages *message.Store
	Rooms    *game.Manager
	Storage  storage.Service
	Mailer   mail.Mailer
	Codes    *twofa.Manager
	Gateway  *session.Gateway
}

// FullAssetURL expands a stored object key into a public URL, or returns ""
// for an empty key.
func (d *AppDeps) FullAssetURL(key string) string {
	if key == "" {
		return ""
	}
	return d.Config.S3PublicBaseURL + "/" + key
}

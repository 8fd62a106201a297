// Package auth содержит общие части HTTP-обработчиков аутентификации.
package auth

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/response"
	authservice "github.com/magabrotheeeer/questly/internal/services/auth"
	"github.com/magabrotheeeer/questly/internal/session"
)

// SessionData — тело успешного входа: токен сессии и профиль пользователя.
type SessionData struct {
	SessionToken string `json:"sessionToken"`
	User         any    `json:"user"`
}

// WriteSession устанавливает cookie сессии и отвечает токеном с профилем.
func WriteSession(w http.ResponseWriter, r *http.Request, cookie session.CookieConfig, res *authservice.Result) {
	cookie.Set(w, res.Session.Token, res.Session.ExpiresAt)
	render.JSON(w, r, response.StatusOKWithData(SessionData{
		SessionToken: res.Session.Token,
		User:         res.User,
	}))
}

// WriteError отвечает статусом и сообщением, соответствующими ошибке сервиса.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
}

// Package me реализует HTTP-обработчик получения текущего пользователя.
//
// Анонимный запрос не является ошибкой: в ответе возвращается user: null.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/handlers/auth"
	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
	"github.com/magabrotheeeer/questly/internal/session"
)

// Service описывает получение владельца сессии.
type Service interface {
	CurrentUser(ctx context.Context, token string) (*models.Profile, error)
}

// Handler обрабатывает запросы текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	cookie  session.CookieConfig
}

// New создаёт Handler.
func New(log *slog.Logger, service Service, cookie session.CookieConfig) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookie:  cookie,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль владельца сессии из cookie или заголовка Authorization, либо user: null.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "user"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profile, err := h.service.CurrentUser(r.Context(), h.cookie.TokenFromRequest(r))
	if err != nil {
		log.Error("failed to resolve current user", sl.Err(err))
		auth.WriteError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": profile,
	}))
}

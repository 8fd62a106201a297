// Package logout реализует HTTP-обработчик выхода.
//
// Выход идемпотентен: повторный вызов и запрос без сессии возвращают success: true.
// Cookie сессии очищается в любом случае.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/handlers/auth"
	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/session"
)

// Service описывает отзыв сессии.
type Service interface {
	Logout(ctx context.Context, token string) (bool, error)
}

// Handler обрабатывает запросы на выход.
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
// @Summary Выход
// @Description Отзывает сессию и очищает cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "success"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.cookie.Clear(w)

	ok, err := h.service.Logout(r.Context(), h.cookie.TokenFromRequest(r))
	if err != nil {
		log.Error("failed to revoke session", sl.Err(err))
		auth.WriteError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"success": ok,
	}))
}

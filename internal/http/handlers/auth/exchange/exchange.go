// Package exchange реализует HTTP-обработчик обмена сессии внешнего
// провайдера входа на сессию Questly.
package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/questly/internal/http/handlers/auth"
	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	authservice "github.com/magabrotheeeer/questly/internal/services/auth"
	"github.com/magabrotheeeer/questly/internal/session"
)

// Request — идентификатор сессии, выданный внешним провайдером.
type Request struct {
	SessionID string `json:"session_id" validate:"required,max=512"`
}

// Service описывает федеративный обмен.
type Service interface {
	Exchange(ctx context.Context, sessionID string) (*authservice.Result, error)
}

// Handler обрабатывает запросы на обмен сессии.
type Handler struct {
	log      *slog.Logger
	service  Service
	cookie   session.CookieConfig
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service, cookie session.CookieConfig) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Федеративный вход
// @Description Обменивает session_id внешнего провайдера на сессию Questly. Неизвестный email регистрируется без пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор сессии провайдера"
// @Success 200 {object} response.Response "sessionToken и user"
// @Failure 400 {object} response.ErrorResponse "Недействительный session_id"
// @Failure 503 {object} response.ErrorResponse "Провайдер недоступен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.exchange"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Exchange(r.Context(), req.SessionID)
	if err != nil {
		log.Error("session exchange failed", sl.Err(err))
		auth.WriteError(w, r, err)
		return
	}

	log.Info("federated login success", slog.String("user_id", res.User.ID))
	auth.WriteSession(w, r, h.cookie, res)
}

// Package login реализует HTTP-обработчик входа по email и паролю.
//
// Неизвестный email и неверный пароль дают одинаковый ответ 401.
// Каждый успешный вход выдаёт новую сессию.
package login

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

// Request — учётные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// Service описывает вход в сервисе аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*authservice.Result, error)
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger         // Логгер для записи операций и ошибок
	service  Service              // Сервис аутентификации
	cookie   session.CookieConfig // Атрибуты cookie сессии
	validate *validator.Validate  // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookie session.CookieConfig) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, выдаёт новую сессию и устанавливает cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "sessionToken и user"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		auth.WriteError(w, r, err)
		return
	}

	log.Info("login success", slog.String("user_id", res.User.ID))
	auth.WriteSession(w, r, h.cookie, res)
}

// Package register реализует HTTP-обработчик регистрации по email и паролю.
//
// После успешной регистрации сразу выдаётся сессия: токен возвращается
// в теле ответа и устанавливается в cookie.
package register

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

// Request — входные данные для регистрации.
//
// Формат email и длину пароля проверяет сервис, здесь только наличие и верхние границы.
type Request struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

// Service описывает регистрацию в сервисе аутентификации.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*authservice.Result, error)
}

// Handler обрабатывает запросы на регистрацию.
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
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись по email и паролю и сразу выдаёт сессию.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} response.Response "sessionToken и user"
// @Failure 400 {object} response.ErrorResponse "Некорректный email или слабый пароль"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		auth.WriteError(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", res.User.ID))
	auth.WriteSession(w, r, h.cookie, res)
}

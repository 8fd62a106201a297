// Package analyze реализует HTTP-обработчик анализа интересов пользователя.
//
// Текст пользователя передаётся сервису анализа; в ответе возвращаются
// карьерные траектории и источник результата (generated или fallback).
// Сессия необязательна: для вошедшего пользователя анализ попадает в историю.
package analyze

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/questly/internal/http/middlewarectx"
	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
	analysisservice "github.com/magabrotheeeer/questly/internal/services/analysis"
)

// Request — текст с описанием интересов пользователя.
type Request struct {
	UserInput string `json:"userInput" validate:"max=5000"`
}

// Service описывает конвейер анализа.
type Service interface {
	Analyze(ctx context.Context, input string, user *models.Identity) (*analysisservice.Outcome, error)
}

// Handler обрабатывает запросы на анализ.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Анализ интересов
// @Description Подбирает 2-3 карьерные траектории по описанию интересов. При непригодном ответе модели возвращает резервный набор (source=fallback).
// @Tags Analysis
// @Accept  json
// @Produce  json
// @Param request body Request true "Описание интересов"
// @Success 200 {object} response.Response "careerPaths и source"
// @Failure 400 {object} response.ErrorResponse "Слишком короткий ввод"
// @Failure 503 {object} response.ErrorResponse "Модель недоступна"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /analyze-career [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analyze"

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

	user, _ := middlewarectx.IdentityFrom(r.Context())
	outcome, err := h.service.Analyze(r.Context(), req.UserInput, user)
	if err != nil {
		log.Error("analysis failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("analysis served", slog.String("source", string(outcome.Source)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"careerPaths": outcome.CareerPaths,
		"source":      outcome.Source,
	}))
}

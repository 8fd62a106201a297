// Package mentor реализует HTTP-обработчик заявки на наставника.
package mentor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
	mentorservice "github.com/magabrotheeeer/questly/internal/services/mentor"
)

const acceptedMessage = "Mentor request submitted successfully. A mentor will contact you soon!"

// Request — заявка на наставника.
type Request struct {
	CareerTitle string `json:"career_title" validate:"max=200"`
	UserName    string `json:"user_name" validate:"max=100"`
	UserEmail   string `json:"user_email" validate:"max=254"`
	Message     string `json:"message" validate:"max=2000"`
}

// Service описывает приём заявок.
type Service interface {
	Request(ctx context.Context, in mentorservice.Input) (*models.MentorRequest, error)
}

// Handler обрабатывает заявки на наставника.
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
// @Summary Заявка на наставника
// @Description Сохраняет заявку со статусом pending и публикует событие mentor.requested.
// @Tags Mentor
// @Accept  json
// @Produce  json
// @Param request body Request true "Заявка"
// @Success 200 {object} response.Response "success, requestId, message"
// @Failure 400 {object} response.ErrorResponse "Неполная заявка или некорректный email"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /request-mentor [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.mentor.request"

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

	created, err := h.service.Request(r.Context(), mentorservice.Input{
		CareerTitle: req.CareerTitle,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		Message:     req.Message,
	})
	if err != nil {
		log.Error("mentor request failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("mentor request accepted", slog.String("mentor_request_id", created.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"success":   true,
		"requestId": created.ID,
		"message":   acceptedMessage,
	}))
}

// Package history реализует HTTP-обработчик истории анализов пользователя.
package history

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/middlewarectx"
	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
)

// Service описывает чтение истории анализов.
type Service interface {
	History(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error)
}

// Handler обрабатывает запросы истории.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История анализов
// @Description Возвращает анализы текущего пользователя, новые первыми.
// @Tags Analysis
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 20, максимум 100)"
// @Success 200 {object} response.Response "analyses и count"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /analyses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}

	records, err := h.service.History(r.Context(), user.UserID, limit)
	if err != nil {
		log.Error("failed to list analyses", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("list analyses", slog.Int("count", len(records)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(records),
		"analyses": records,
	}))
}

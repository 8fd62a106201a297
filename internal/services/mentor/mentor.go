// Package services принимает заявки на наставника: проверяет их, сохраняет
// и публикует событие для внешней обработки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
	authservice "github.com/magabrotheeeer/questly/internal/services/auth"
)

// MentorRequestedEvent — событие о новой заявке на наставника.
type MentorRequestedEvent struct {
	RequestID   string    `json:"request_id"`
	CareerTitle string    `json:"career_title"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// MentorRepository хранит заявки на наставника.
type MentorRepository interface {
	SaveMentorRequest(ctx context.Context, req models.MentorRequest) error
}

// Publisher публикует событие о заявке.
type Publisher interface {
	PublishMentorRequested(ctx context.Context, event MentorRequestedEvent) error
}

// Input — данные заявки от пользователя.
type Input struct {
	CareerTitle string
	UserName    string
	UserEmail   string
	Message     string
}

// MentorService обрабатывает заявки на наставника.
type MentorService struct {
	repo      MentorRepository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewMentorService создаёт MentorService. publisher может быть nil.
func NewMentorService(repo MentorRepository, publisher Publisher, log *slog.Logger) *MentorService {
	return &MentorService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Request проверяет и сохраняет заявку со статусом pending.
// Ошибка публикации события только логируется: заявка уже сохранена.
func (s *MentorService) Request(ctx context.Context, in Input) (*models.MentorRequest, error) {
	const op = "services.mentor.Request"

	req := models.MentorRequest{
		CareerTitle: strings.TrimSpace(in.CareerTitle),
		UserName:    strings.TrimSpace(in.UserName),
		UserEmail:   strings.TrimSpace(in.UserEmail),
		Message:     strings.TrimSpace(in.Message),
	}
	if req.CareerTitle == "" || req.UserName == "" || req.Message == "" {
		return nil, models.ErrIncompleteMentor
	}
	if !authservice.ValidEmail(req.UserEmail) {
		return nil, models.ErrInvalidEmail
	}

	req.ID = uuid.NewString()
	req.Status = models.MentorStatusPending
	req.CreatedAt = s.now().UTC()

	if err := s.repo.SaveMentorRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.publisher != nil {
		event := MentorRequestedEvent{
			RequestID:   req.ID,
			CareerTitle: req.CareerTitle,
			UserName:    req.UserName,
			UserEmail:   req.UserEmail,
			Message:     req.Message,
			CreatedAt:   req.CreatedAt,
		}
		if err := s.publisher.PublishMentorRequested(ctx, event); err != nil {
			s.log.Error("failed to publish mentor request", slog.String("request_id", req.ID), sl.Err(err))
		}
	}

	s.log.Info("mentor request accepted", slog.String("request_id", req.ID))
	return &req, nil
}

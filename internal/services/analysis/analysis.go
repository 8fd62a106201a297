// Package services содержит бизнес‑логику анализа интересов: генерацию
// карьерных траекторий, подстановку резервного набора, обогащение
// справочными данными и историю анализов пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/questly/internal/careers"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
)

// MinInputLength — минимальное число непробельных символов во вводе пользователя.
const MinInputLength = 5

// Ограничения выборки истории анализов.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Generator отправляет запрос языковой модели и возвращает её текстовый ответ.
//
// Ошибки транспорта и таймауты оборачивают models.ErrUpstreamUnavailable,
// остальные ошибки считаются непригодным содержимым ответа.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Enricher добавляет к траекториям справочные данные.
type Enricher interface {
	Enrich(paths []models.CareerPath) []models.CareerPath
}

// AnalysisRepository хранит историю анализов.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, rec models.AnalysisRecord) error
	ListAnalyses(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error)
}

// Recorder собирает метрики анализа.
type Recorder interface {
	ObserveGeneration(d time.Duration, err error)
	AnalysisCompleted(source models.AnalysisSource)
}

// Outcome — результат анализа. Source показывает, откуда взяты траектории;
// Reason заполнен только для резервного набора.
type Outcome struct {
	CareerPaths []models.CareerPath
	Source      models.AnalysisSource
	Reason      string
}

// AnalysisService реализует конвейер анализа интересов.
type AnalysisService struct {
	generator Generator
	enricher  Enricher
	repo      AnalysisRepository
	recorder  Recorder
	log       *slog.Logger
	now       func() time.Time
}

// NewAnalysisService создаёт AnalysisService. repo и recorder могут быть nil.
func NewAnalysisService(generator Generator, enricher Enricher, repo AnalysisRepository, recorder Recorder, log *slog.Logger) *AnalysisService {
	return &AnalysisService{
		generator: generator,
		enricher:  enricher,
		repo:      repo,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
	}
}

// Analyze строит траектории по тексту пользователя.
//
// Слишком короткий ввод отклоняется до обращения к модели. Недоступность
// модели возвращается как ошибка. Непригодный ответ модели ошибкой не
// считается: вместо него возвращается резервный набор траекторий.
// Для вошедшего пользователя результат сохраняется в историю.
func (s *AnalysisService) Analyze(ctx context.Context, input string, user *models.Identity) (*Outcome, error) {
	const op = "services.analysis.Analyze"

	if !longEnough(input) {
		return nil, models.ErrInputTooShort
	}

	log := s.log.With(slog.String("op", op))

	paths, err := s.generate(ctx, input)
	outcome := &Outcome{Source: models.SourceGenerated}
	switch {
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return nil, fmt.Errorf("%s: %w", op, err)
	case err != nil:
		log.Warn("model output rejected, using fallback", sl.Err(err))
		paths = careers.Fallback()
		outcome.Source = models.SourceFallback
		outcome.Reason = err.Error()
	}
	outcome.CareerPaths = s.enricher.Enrich(paths)

	if s.recorder != nil {
		s.recorder.AnalysisCompleted(outcome.Source)
	}
	log.Info("analysis completed",
		slog.String("source", string(outcome.Source)),
		slog.Int("paths", len(outcome.CareerPaths)),
	)

	if user != nil && s.repo != nil {
		rec := models.AnalysisRecord{
			ID:          uuid.NewString(),
			UserID:      user.UserID,
			Input:       input,
			CareerPaths: outcome.CareerPaths,
			Source:      outcome.Source,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.SaveAnalysis(ctx, rec); err != nil {
			log.Error("failed to save analysis", slog.String("user_id", user.UserID), sl.Err(err))
		}
	}

	return outcome, nil
}

// History возвращает анализы пользователя, новые первыми.
// Неположительный limit заменяется на DefaultHistoryLimit, больший MaxHistoryLimit обрезается.
func (s *AnalysisService) History(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	const op = "services.analysis.History"

	if s.repo == nil {
		return []models.AnalysisRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.repo.ListAnalyses(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

func (s *AnalysisService) generate(ctx context.Context, input string) ([]models.CareerPath, error) {
	prompt, err := careers.BuildPrompt(input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	if s.recorder != nil {
		s.recorder.ObserveGeneration(time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	return careers.Parse(text)
}

func longEnough(input string) bool {
	n := 0
	for _, r := range input {
		if !unicode.IsSpace(r) {
			n++
			if n >= MinInputLength {
				return true
			}
		}
	}
	return false
}

package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/questly/internal/models"
)

// SaveAnalysis добавляет запись в историю анализов.
func (s *Storage) SaveAnalysis(ctx context.Context, rec models.AnalysisRecord) error {
	const op = "storage.postgresql.SaveAnalysis"

	paths, err := json.Marshal(rec.CareerPaths)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO career_analyses (analysis_id, user_id, input, career_paths, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.UserID, rec.Input, paths, string(rec.Source), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAnalyses возвращает до limit анализов пользователя, новые первыми.
func (s *Storage) ListAnalyses(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	const op = "storage.postgresql.ListAnalyses"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT analysis_id, user_id, input, career_paths, source, created_at
		FROM career_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	records := make([]models.AnalysisRecord, 0, limit)
	for rows.Next() {
		var (
			rec    models.AnalysisRecord
			paths  []byte
			source string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Input, &paths, &source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(paths, &rec.CareerPaths); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, models.ErrMalformedRecord, err)
		}
		rec.Source = models.AnalysisSource(source)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// SaveMentorRequest сохраняет заявку на наставника.
func (s *Storage) SaveMentorRequest(ctx context.Context, req models.MentorRequest) error {
	const op = "storage.postgresql.SaveMentorRequest"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO mentor_requests (request_id, career_title, user_name, user_email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.CareerTitle, req.UserName, req.UserEmail, req.Message, string(req.Status), req.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

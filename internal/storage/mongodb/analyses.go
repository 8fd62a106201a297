package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/questly/internal/models"
)

type analysisDoc struct {
	AnalysisID  string              `bson:"analysis_id"`
	UserID      string              `bson:"user_id"`
	Input       string              `bson:"input"`
	CareerPaths []models.CareerPath `bson:"career_paths"`
	Source      string              `bson:"source"`
	CreatedAt   time.Time           `bson:"created_at"`
}

// SaveAnalysis добавляет запись в историю анализов.
func (s *Storage) SaveAnalysis(ctx context.Context, rec models.AnalysisRecord) error {
	const op = "storage.mongodb.SaveAnalysis"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Collection(analysesCollection).InsertOne(ctx, analysisDoc{
		AnalysisID:  rec.ID,
		UserID:      rec.UserID,
		Input:       rec.Input,
		CareerPaths: rec.CareerPaths,
		Source:      string(rec.Source),
		CreatedAt:   rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAnalyses возвращает до limit анализов пользователя, новые первыми.
// Документы, не прошедшие проверку формы, пропускаются.
func (s *Storage) ListAnalyses(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	const op = "storage.mongodb.ListAnalyses"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.db.Collection(analysesCollection).Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	records := make([]models.AnalysisRecord, 0, limit)
	for cur.Next(ctx) {
		var doc analysisDoc
		if err := cur.Decode(&doc); err != nil || doc.AnalysisID == "" {
			continue
		}
		records = append(records, models.AnalysisRecord{
			ID:          doc.AnalysisID,
			UserID:      doc.UserID,
			Input:       doc.Input,
			CareerPaths: doc.CareerPaths,
			Source:      models.AnalysisSource(doc.Source),
			CreatedAt:   doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

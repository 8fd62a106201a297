package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/magabrotheeeer/questly/internal/models"
)

type sessionDoc struct {
	Token     string    `bson:"session_token"`
	UserID    string    `bson:"user_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	Picture   string    `bson:"picture,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (d sessionDoc) valid() bool {
	return d.Token != "" && d.UserID != "" && !d.ExpiresAt.IsZero()
}

// SaveSession сохраняет сессию.
func (s *Storage) SaveSession(ctx context.Context, sess models.Session) error {
	const op = "storage.mongodb.SaveSession"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Collection(sessionsCollection).InsertOne(ctx, sessionDoc{
		Token:     sess.Token,
		UserID:    sess.UserID,
		Email:     sess.Email,
		Name:      sess.Name,
		Picture:   sess.Picture,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает сессию по токену без проверки срока действия.
func (s *Storage) GetSession(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.mongodb.GetSession"

	var doc sessionDoc
	if err := s.findOne(ctx, sessionsCollection, bson.D{{Key: "session_token", Value: token}}, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !doc.valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMalformedRecord)
	}

	return &models.Session{
		Token:     doc.Token,
		UserID:    doc.UserID,
		Email:     doc.Email,
		Name:      doc.Name,
		Picture:   doc.Picture,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// DeleteSession удаляет сессию. Отсутствие записи ошибкой не считается.
func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	const op = "storage.mongodb.DeleteSession"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.Collection(sessionsCollection).DeleteOne(ctx, bson.D{{Key: "session_token", Value: token}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

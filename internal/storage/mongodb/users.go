package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/magabrotheeeer/questly/internal/models"
)

type userDoc struct {
	UserID       string    `bson:"user_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	Picture      string    `bson:"picture,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d userDoc) valid() bool {
	return d.UserID != "" && d.Email != ""
}

// CreateUser сохраняет учётную запись. Занятый email даёт models.ErrDuplicateEmail,
// занятый идентификатор — models.ErrDuplicateUserID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.mongodb.CreateUser"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Collection(usersCollection).InsertOne(ctx, userDoc{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Picture:      user.Picture,
		CreatedAt:    user.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		if duplicateOn(err, usersEmailIndex) {
			return models.ErrDuplicateEmail
		}
		return models.ErrDuplicateUserID
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByEmail ищет учётную запись по точному email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongodb.GetUserByEmail"

	var doc userDoc
	if err := s.findOne(ctx, usersCollection, bson.D{{Key: "email", Value: email}}, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !doc.valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMalformedRecord)
	}

	return &models.User{
		ID:           doc.UserID,
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.PasswordHash,
		Picture:      doc.Picture,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// duplicateOn сообщает, нарушен ли уникальный индекс index.
// Сервер называет индекс в тексте ошибки E11000.
func duplicateOn(err error, index string) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == 11000 && strings.Contains(e.Message, "index: "+index+" ") {
			return true
		}
	}
	return false
}

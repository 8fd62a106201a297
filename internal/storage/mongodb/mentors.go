package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/questly/internal/models"
)

type mentorDoc struct {
	RequestID   string    `bson:"request_id"`
	CareerTitle string    `bson:"career_title"`
	UserName    string    `bson:"user_name"`
	UserEmail   string    `bson:"user_email"`
	Message     string    `bson:"message"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
}

// SaveMentorRequest сохраняет заявку на наставника.
func (s *Storage) SaveMentorRequest(ctx context.Context, req models.MentorRequest) error {
	const op = "storage.mongodb.SaveMentorRequest"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Collection(mentorsCollection).InsertOne(ctx, mentorDoc{
		RequestID:   req.ID,
		CareerTitle: req.CareerTitle,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		Message:     req.Message,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

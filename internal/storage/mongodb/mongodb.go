// Package mongodb реализует хранилище Questly на MongoDB: учётные записи,
// сессии, историю анализов и заявки на наставника.
//
// Каждый документ читается в типизированную структуру и проходит проверку
// формы; запись, не прошедшая проверку, возвращается как models.ErrMalformedRecord.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/magabrotheeeer/questly/internal/models"
)

// Имена коллекций.
const (
	usersCollection    = "users"
	usersEmailIndex    = "users_email_unique"
	sessionsCollection = "sessions"
	analysesCollection = "career_analyses"
	mentorsCollection  = "mentor_requests"
)

// Storage инкапсулирует подключение к базе MongoDB.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	opTTL  time.Duration
}

// New подключается к MongoDB, проверяет соединение и создаёт индексы.
// opTimeout ограничивает каждую операцию с хранилищем; 0 — без ограничения.
func New(ctx context.Context, uri, database string, opTimeout time.Duration) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{
		client: client,
		db:     client.Database(database),
		opTTL:  opTimeout,
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Ping проверяет доступность сервера.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Close закрывает подключение.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	const op = "storage.mongodb.ensureIndexes"

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usersEmailIndex)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "session_token", Value: 1}}, Options: options.Index().SetUnique(true)},
			// Истёкшие сессии удаляются сервером в фоне; проверка срока при чтении остаётся.
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		analysesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("%s: %s: %w", op, name, err)
		}
	}
	return nil
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTTL <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTTL)
}

// findOne декодирует один документ по точному фильтру.
// Отсутствие документа — models.ErrNotFound, ошибка декодирования — models.ErrMalformedRecord.
func (s *Storage) findOne(ctx context.Context, collection string, filter bson.D, out any) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := s.db.Collection(collection).FindOne(ctx, filter)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ErrNotFound
		}
		return err
	}
	if err := res.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedRecord, err)
	}
	return nil
}

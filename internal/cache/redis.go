// Package cache хранит серверные сессии в Redis.
//
// Ключ сессии живёт ровно до ExpiresAt, поэтому истёкшие записи Redis
// удаляет сам.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/models"
)

const sessionKeyPrefix = "session:"

// Cache — хранилище сессий поверх Redis.
type Cache struct {
	Db  *redis.Client
	now func() time.Time
}

type sessionValue struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.Redis) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db, now: time.Now}, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// SaveSession сохраняет сессию с TTL до её истечения.
// Уже истёкшая сессия не сохраняется.
func (c *Cache) SaveSession(ctx context.Context, s models.Session) error {
	const op = "cache.SaveSession"

	ttl := s.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(sessionValue{
		UserID:    s.UserID,
		Email:     s.Email,
		Name:      s.Name,
		Picture:   s.Picture,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Set(ctx, sessionKey(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает сессию по токену или models.ErrNotFound.
func (c *Cache) GetSession(ctx context.Context, token string) (*models.Session, error) {
	const op = "cache.GetSession"

	val, err := c.Db.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var v sessionValue
	if err := json.Unmarshal(val, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMalformedRecord)
	}
	if v.UserID == "" || v.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMalformedRecord)
	}
	return &models.Session{
		Token:     token,
		UserID:    v.UserID,
		Email:     v.Email,
		Name:      v.Name,
		Picture:   v.Picture,
		CreatedAt: v.CreatedAt,
		ExpiresAt: v.ExpiresAt,
	}, nil
}

// DeleteSession удаляет сессию. Отсутствие ключа не является ошибкой.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	const op = "cache.DeleteSession"
	if err := c.Db.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}

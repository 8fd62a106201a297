// Package session выдаёт, разрешает и отзывает серверные сессии.
//
// Сессия живёт в одном из трёх состояний: активна (now < ExpiresAt),
// истекла (переход только по времени, без записи в хранилище) и отозвана
// (запись удалена). Истечение проверяется при каждом разрешении токена.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/questly/internal/models"
)

// DefaultTTL — срок действия сессии по умолчанию.
const DefaultTTL = 7 * 24 * time.Hour

// tokenBytes — энтропия токена в байтах.
const tokenBytes = 32

// Store описывает хранилище сессий.
//
// GetSession возвращает models.ErrNotFound, если записи нет.
// DeleteSession не считает отсутствие записи ошибкой.
type Store interface {
	SaveSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Manager управляет жизненным циклом сессий.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// Option настраивает Manager.
type Option func(*Manager)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager создаёт Manager. Неположительный ttl заменяется на DefaultTTL.
func NewManager(store Store, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает срок действия выдаваемых сессий.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue создаёт новую сессию для личности и сохраняет её.
// Каждый вызов выдаёт новый токен, прежние сессии не продлеваются.
func (m *Manager) Issue(ctx context.Context, id models.Identity) (models.Session, error) {
	const op = "session.Issue"

	token, err := NewToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	now := m.now().UTC()
	s := models.Session{
		Token:     token,
		UserID:    id.UserID,
		Email:     id.Email,
		Name:      id.Name,
		Picture:   id.Picture,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.SaveSession(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Resolve возвращает личность владельца токена или nil, если токен пуст,
// неизвестен или истёк. Ошибка возвращается только при сбое хранилища.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	const op = "session.Resolve"

	if token == "" {
		return nil, nil
	}

	s, err := m.store.GetSession(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.Active(m.now()) {
		return nil, nil
	}
	id := s.Identity()
	return &id, nil
}

// Revoke удаляет сессию. Повторный отзыв и отзыв неизвестного токена
// тоже считаются успешными.
func (m *Manager) Revoke(ctx context.Context, token string) (bool, error) {
	const op = "session.Revoke"

	if token == "" {
		return true, nil
	}
	if err := m.store.DeleteSession(ctx, token); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// NewToken генерирует непредсказуемый токен из 32 случайных байт
// в URL‑безопасной кодировке base64 без паддинга.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Package postgresql реализует хранилище Questly на PostgreSQL через
// database/sql и драйвер pgx. Схема создаётся миграциями из каталога migrations.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/questly/internal/models"
)

const (
	uniqueViolation = "23505"
	usersEmailKey   = "users_email_key"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB    *sql.DB
	opTTL time.Duration
}

// New открывает пул соединений и проверяет доступность базы.
func New(ctx context.Context, dsn string, opTimeout time.Duration) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s := &Storage{DB: db, opTTL: opTimeout}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close(context.Context) error {
	return s.DB.Close()
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTTL <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTTL)
}

// CreateUser сохраняет учётную запись. Занятый email даёт models.ErrDuplicateEmail,
// занятый идентификатор — models.ErrDuplicateUserID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgresql.CreateUser"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (user_id, email, name, password_hash, picture, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Picture, user.CreatedAt)
	if pgErr := uniqueViolationOf(err); pgErr != nil {
		if pgErr.ConstraintName == usersEmailKey {
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
	const op = "storage.postgresql.GetUserByEmail"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		u    models.User
		hash sql.NullString
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT user_id, email, name, password_hash, picture, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &hash, &u.Picture, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.PasswordHash = hash.String
	return &u, nil
}

// SaveSession сохраняет сессию.
func (s *Storage) SaveSession(ctx context.Context, sess models.Session) error {
	const op = "storage.postgresql.SaveSession"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO sessions (session_token, user_id, email, name, picture, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.Token, sess.UserID, sess.Email, sess.Name, sess.Picture, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает сессию по токену без проверки срока действия.
func (s *Storage) GetSession(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.postgresql.GetSession"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var sess models.Session
	err := s.DB.QueryRowContext(ctx, `
		SELECT session_token, user_id, email, name, picture, created_at, expires_at
		FROM sessions WHERE session_token = $1`, token).
		Scan(&sess.Token, &sess.UserID, &sess.Email, &sess.Name, &sess.Picture, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// DeleteSession удаляет сессию. Отсутствие записи ошибкой не считается.
func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	const op = "storage.postgresql.DeleteSession"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE session_token = $1`, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func uniqueViolationOf(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr
	}
	return nil
}

// Package services содержит бизнес‑логику аутентификации: регистрацию и вход
// по паролю, обмен федеративной сессии, получение текущего пользователя и выход.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/questly/internal/lib/password"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRepository описывает хранилище учётных записей.
type UserRepository interface {
	// CreateUser сохраняет пользователя; при занятом email возвращает models.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByEmail возвращает пользователя или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionManager выдаёт, разрешает и отзывает сессии.
type SessionManager interface {
	Issue(ctx context.Context, id models.Identity) (models.Session, error)
	Resolve(ctx context.Context, token string) (*models.Identity, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

// ProfileProvider обменивает идентификатор сессии внешнего провайдера на профиль.
type ProfileProvider interface {
	Exchange(ctx context.Context, sessionID string) (*models.Profile, error)
}

// SessionCounter учитывает выданные сессии по способу входа.
type SessionCounter interface {
	SessionIssued(method string)
}

// Result — выданная сессия и профиль пользователя.
type Result struct {
	Session models.Session
	User    models.Profile
}

// AuthService реализует аутентификацию на серверных сессиях.
type AuthService struct {
	users    UserRepository
	sessions SessionManager
	provider ProfileProvider
	counter  SessionCounter
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создаёт AuthService. provider и counter могут быть nil.
func NewAuthService(users UserRepository, sessions SessionManager, provider ProfileProvider, counter SessionCounter, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		provider: provider,
		counter:  counter,
		log:      log,
		now:      time.Now,
	}
}

// ValidEmail сообщает, имеет ли адрес вид local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register создаёт парольную учётную запись и сразу выдаёт сессию.
//
// Пустое имя заменяется локальной частью email.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, name string) (*Result, error) {
	const op = "services.auth.Register"

	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return nil, models.ErrInvalidEmail
	}
	if len(rawPassword) < password.MinLength {
		return nil, models.ErrWeakPassword
	}
	if len(rawPassword) > password.MaxLength {
		return nil, models.ErrPasswordTooLong
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, models.ErrDuplicateEmail
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:strings.IndexByte(email, '@')]
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_id", user.ID))

	return s.issue(ctx, op, "password", user.Profile())
}

// Login проверяет пароль и выдаёт новую сессию.
//
// Неизвестный email, неверный пароль и федеративный аккаунт без пароля
// дают одну и ту же ошибку models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*Result, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.HasPassword() {
		return nil, models.ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Warn("password hash comparison failed", sl.Err(err))
		}
		return nil, models.ErrInvalidCredentials
	}

	return s.issue(ctx, op, "password", user.Profile())
}

// Exchange обменивает идентификатор сессии внешнего провайдера на сессию Questly.
//
// Неизвестный email регистрируется как федеративный аккаунт без пароля,
// для известного используется существующий идентификатор пользователя.
// Если идентификатор провайдера уже занят другим аккаунтом, создаётся новый.
func (s *AuthService) Exchange(ctx context.Context, sessionID string) (*Result, error) {
	const op = "services.auth.Exchange"

	if s.provider == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUpstreamUnavailable)
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, models.ErrInvalidSessionID
	}

	profile, err := s.provider.Exchange(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		user = &models.User{
			ID:        profile.ID,
			Email:     profile.Email,
			Name:      profile.Name,
			Picture:   profile.Picture,
			CreatedAt: s.now().UTC(),
		}
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		err = s.users.CreateUser(ctx, *user)
		if errors.Is(err, models.ErrDuplicateUserID) {
			// идентификатор провайдера занят другим аккаунтом
			s.log.Warn("federated user id taken, generating a new one", slog.String("user_id", user.ID))
			user.ID = uuid.NewString()
			err = s.users.CreateUser(ctx, *user)
		}
		if errors.Is(err, models.ErrDuplicateEmail) {
			// аккаунт создан параллельным запросом
			user, err = s.users.GetUserByEmail(ctx, profile.Email)
		} else if err == nil {
			s.log.Info("federated user created", slog.String("user_id", user.ID))
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.issue(ctx, op, "federated", models.Profile{
		ID:      user.ID,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	})
}

// CurrentUser возвращает профиль владельца токена или nil для анонимного запроса.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.Profile, error) {
	const op = "services.auth.CurrentUser"

	id, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if id == nil {
		return nil, nil
	}
	profile := id.Profile()
	return &profile, nil
}

// Logout отзывает сессию. Отсутствие сессии не считается ошибкой.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	const op = "services.auth.Logout"

	ok, err := s.sessions.Revoke(ctx, token)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (s *AuthService) issue(ctx context.Context, op, method string, profile models.Profile) (*Result, error) {
	sess, err := s.sessions.Issue(ctx, models.Identity{
		UserID:  profile.ID,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.counter != nil {
		s.counter.SessionIssued(method)
	}
	s.log.Info("session issued", slog.String("user_id", profile.ID), slog.String("method", method), sl.Token(sess.Token))

	return &Result{Session: sess, User: profile}, nil
}

// Package middlewarectx содержит HTTP middleware для разрешения серверных сессий.
//
// SessionMiddleware извлекает токен из cookie или заголовка Authorization,
// разрешает его в личность и кладёт её в контекст запроса. Отсутствующая,
// неизвестная или истёкшая сессия не является ошибкой: запрос продолжается
// анонимно. RequireSession отклоняет анонимные запросы с HTTP 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/response"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/models"
	"github.com/magabrotheeeer/questly/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// IdentityKey — ключ для личности владельца сессии в контексте.
	IdentityKey Key = "identity"
	// TokenKey — ключ для токена сессии в контексте.
	TokenKey Key = "session_token"
)

// Resolver разрешает токен сессии в личность.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// SessionMiddleware возвращает middleware, который разрешает сессию запроса.
//
// Ошибка хранилища записывается в лог, а запрос продолжается анонимно.
func SessionMiddleware(resolver Resolver, cookie session.CookieConfig, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			token := cookie.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			id, err := resolver.Resolve(ctx, token)
			if err != nil {
				log.Warn("failed to resolve session",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
			}
			if id != nil {
				ctx = context.WithValue(ctx, IdentityKey, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession пропускает только запросы с разрешённой сессией.
func RequireSession(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireSession"

			if _, ok := IdentityFrom(r.Context()); !ok {
				log.Info("unauthorized request",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom возвращает личность из контекста запроса.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*models.Identity)
	return id, ok && id != nil
}

// TokenFrom возвращает токен сессии, предъявленный в запросе.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

package session

import (
	"net/http"
	"strings"
	"time"
)

// DefaultCookieName — имя cookie с токеном сессии.
const DefaultCookieName = "session_token"

// CookieConfig описывает атрибуты cookie сессии.
// Secure и SameSite зависят от окружения развёртывания.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// ExtractToken выбирает токен запроса: cookie с именем name имеет приоритет,
// иначе берётся заголовок "Authorization: Bearer <token>".
// Возвращает пустую строку, если токена нет.
func ExtractToken(cookies []*http.Cookie, header http.Header, name string) string {
	if name == "" {
		name = DefaultCookieName
	}
	for _, c := range cookies {
		if c.Name == name && c.Value != "" {
			return c.Value
		}
	}

	auth := strings.TrimSpace(header.Get("Authorization"))
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// TokenFromRequest — ExtractToken для входящего запроса.
func (c CookieConfig) TokenFromRequest(r *http.Request) string {
	return ExtractToken(r.Cookies(), r.Header, c.name())
}

// Set записывает cookie с токеном, действующую до expiresAt.
func (c CookieConfig) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Clear удаляет cookie сессии у клиента.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

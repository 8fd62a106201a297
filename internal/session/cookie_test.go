package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/session"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		cookies []*http.Cookie
		auth    string
		want    string
	}{
		{
			name: "nothing presented",
			want: "",
		},
		{
			name:    "cookie only",
			cookies: []*http.Cookie{{Name: "session_token", Value: "from-cookie"}},
			want:    "from-cookie",
		},
		{
			name: "bearer only",
			auth: "Bearer from-header",
			want: "from-header",
		},
		{
			name:    "cookie wins over header",
			cookies: []*http.Cookie{{Name: "session_token", Value: "from-cookie"}},
			auth:    "Bearer from-header",
			want:    "from-cookie",
		},
		{
			name:    "other cookie ignored",
			cookies: []*http.Cookie{{Name: "theme", Value: "dark"}},
			auth:    "bearer from-header",
			want:    "from-header",
		},
		{
			name:    "empty cookie falls back to header",
			cookies: []*http.Cookie{{Name: "session_token", Value: ""}},
			auth:    "Bearer from-header",
			want:    "from-header",
		},
		{
			name: "basic scheme rejected",
			auth: "Basic dXNlcjpwYXNz",
			want: "",
		},
		{
			name: "bearer without token",
			auth: "Bearer ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.auth != "" {
				header.Set("Authorization", tt.auth)
			}
			assert.Equal(t, tt.want, session.ExtractToken(tt.cookies, header, session.DefaultCookieName))
		})
	}
}

func TestCookieConfig_TokenFromRequest(t *testing.T) {
	cfg := session.CookieConfig{Name: "sid"}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	r.Header.Set("Authorization", "Bearer xyz")

	assert.Equal(t, "abc", cfg.TokenFromRequest(r))
}

func TestCookieConfig_SetAndClear(t *testing.T) {
	cfg := session.CookieConfig{Secure: true, SameSite: http.SameSiteNoneMode}

	rec := httptest.NewRecorder()
	cfg.Set(rec, "tok", time.Now().Add(session.DefaultTTL))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.DefaultCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	assert.InDelta(t, session.DefaultTTL.Seconds(), c.MaxAge, 5)

	rec = httptest.NewRecorder()
	cfg.Clear(rec)

	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

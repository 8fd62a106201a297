package me

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/models"
	"github.com/magabrotheeeer/questly/internal/session"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) CurrentUser(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(ctx, token)
	resp, _ := args.Get(0).(*models.Profile)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	profile := &models.Profile{ID: "u1", Email: "palesa@example.com", Name: "Palesa", Picture: models.AvatarURL("Palesa")}

	tests := []struct {
		name     string
		cookie   string
		header   string
		token    string
		mockResp *models.Profile
		mockErr  error
		wantCode int
		wantBody string
	}{
		{
			name:     "cookie session",
			cookie:   "cookie-tok",
			token:    "cookie-tok",
			mockResp: profile,
			wantCode: http.StatusOK,
			wantBody: `{"status":"OK","data":{"user":{"id":"u1","email":"palesa@example.com","name":"Palesa","picture":"https://ui-avatars.com/api/?name=Palesa&background=10b981&color=fff"}}}`,
		},
		{
			name:     "bearer header session",
			header:   "Bearer header-tok",
			token:    "header-tok",
			mockResp: profile,
			wantCode: http.StatusOK,
			wantBody: `{"status":"OK","data":{"user":{"id":"u1","email":"palesa@example.com","name":"Palesa","picture":"https://ui-avatars.com/api/?name=Palesa&background=10b981&color=fff"}}}`,
		},
		{
			name:     "anonymous",
			token:    "",
			wantCode: http.StatusOK,
			wantBody: `{"status":"OK","data":{"user":null}}`,
		},
		{
			name:     "store failure",
			cookie:   "tok",
			token:    "tok",
			mockErr:  errors.New("services.auth.CurrentUser: timeout"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			svc.On("CurrentUser", mock.Anything, tt.token).Return(tt.mockResp, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc, session.CookieConfig{}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var raw json.RawMessage
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
			assert.JSONEq(t, tt.wantBody, string(raw))
			svc.AssertExpectations(t)
		})
	}
}

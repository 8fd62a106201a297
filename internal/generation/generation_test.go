package generation_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/generation"
	"github.com/magabrotheeeer/questly/internal/models"
)

func reply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func newClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *generation.Client {
	t.Helper()
	c, err := generation.New(context.Background(), generation.Config{
		APIKey:          "test-key",
		Model:           "gemini-2.0-flash",
		BaseURL:         srv.URL,
		Timeout:         timeout,
		Temperature:     0.8,
		TopP:            0.9,
		MaxOutputTokens: 8000,
	})
	require.NoError(t, err)
	return c
}

func TestClient_Generate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply(`[{"id": "1"}]`))
	}))
	defer srv.Close()

	text, err := newClient(t, srv, time.Second).Generate(context.Background(), "suggest careers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "1"}]`, text)

	raw, _ := json.Marshal(gotBody)
	assert.True(t, strings.Contains(string(raw), "suggest careers"))
	assert.True(t, strings.Contains(string(raw), "maxOutputTokens"))
}

func TestClient_Generate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply("   "))
	}))
	defer srv.Close()

	_, err := newClient(t, srv, time.Second).Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, generation.ErrEmptyResponse)
	assert.NotErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestClient_Generate_Upstream(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`))
		}))
		defer srv.Close()

		_, err := newClient(t, srv, time.Second).Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := newClient(t, srv, 50*time.Millisecond).Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := generation.New(context.Background(), generation.Config{Model: "m"})
	assert.Error(t, err)
}

func TestDisabled_Generate(t *testing.T) {
	_, err := generation.Disabled{}.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

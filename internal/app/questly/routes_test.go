package questly

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/careers"
	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/http/handlers/health"
	"github.com/magabrotheeeer/questly/internal/metrics"
	"github.com/magabrotheeeer/questly/internal/models"
	analysisservice "github.com/magabrotheeeer/questly/internal/services/analysis"
	authservice "github.com/magabrotheeeer/questly/internal/services/auth"
	mentorservice "github.com/magabrotheeeer/questly/internal/services/mentor"
	"github.com/magabrotheeeer/questly/internal/session"
)

type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	sessions map[string]models.Session
	analyses []models.AnalysisRecord
	mentors  []models.MentorRequest
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		sessions: map[string]models.Session{},
	}
}

func (s *memStore) CreateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return models.ErrDuplicateEmail
	}
	s.users[u.Email] = u
	return nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) SaveSession(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *memStore) GetSession(_ context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &sess, nil
}

func (s *memStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memStore) SaveAnalysis(_ context.Context, rec models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append(s.analyses, rec)
	return nil
}

func (s *memStore) ListAnalyses(_ context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AnalysisRecord{}
	for _, rec := range s.analyses {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) SaveMentorRequest(_ context.Context, req models.MentorRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentors = append(s.mentors, req)
	return nil
}

func (s *memStore) Ping(context.Context) error  { return nil }
func (s *memStore) Close(context.Context) error { return nil }

type proseGenerator struct{}

func (proseGenerator) Generate(context.Context, string) (string, error) {
	return "Sorry, I can only answer in prose today.", nil
}

func newTestRouter(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemStore()
	m := metrics.New()
	sessions := session.NewManager(store, time.Hour)

	cfg := &config.Config{
		HTTPServer: config.HTTPServer{Timeout: 5 * time.Second},
		CORS:       config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
		Session:    config.Session{CookieName: "session_token", SameSite: "lax"},
	}
	svc := Services{
		Auth:     authservice.NewAuthService(store, sessions, nil, m, logger),
		Sessions: sessions,
		Analysis: analysisservice.NewAnalysisService(proseGenerator{}, careers.DefaultCatalog(), store, m, logger),
		Mentor:   mentorservice.NewMentorService(store, nil, logger),
		Metrics:  m,
		Pingers:  map[string]health.Pinger{"storage": store},
	}

	r := chi.NewRouter()
	RegisterRoutes(r, logger, cfg, svc)
	return r, store
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRoutes_SessionLifecycle(t *testing.T) {
	h, store := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/auth/register", `{"email":"sizwe@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	var issued struct {
		SessionToken string         `json:"sessionToken"`
		User         models.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issued))
	assert.NotEmpty(t, issued.SessionToken)
	assert.Equal(t, "sizwe", issued.User.Name)

	_, env = do(t, h, http.MethodGet, "/api/auth/me", "", issued.SessionToken)
	assert.JSONEq(t, `{"user":{"id":"`+issued.User.ID+`","email":"sizwe@example.com","name":"sizwe","picture":"https://ui-avatars.com/api/?name=sizwe&background=10b981&color=fff"}}`, string(env.Data))

	rec, _ = do(t, h, http.MethodPost, "/api/auth/register", `{"email":"sizwe@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/auth/login", `{"email":"sizwe@example.com","password":"wrong!!"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, env = do(t, h, http.MethodPost, "/api/auth/logout", "", issued.SessionToken)
	assert.JSONEq(t, `{"success":true}`, string(env.Data))
	_, env = do(t, h, http.MethodPost, "/api/auth/logout", "", issued.SessionToken)
	assert.JSONEq(t, `{"success":true}`, string(env.Data))

	_, env = do(t, h, http.MethodGet, "/api/auth/me", "", issued.SessionToken)
	assert.JSONEq(t, `{"user":null}`, string(env.Data))
	assert.Empty(t, store.sessions)
}

func TestRoutes_AnalyzeFallbackAndHistory(t *testing.T) {
	h, _ := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/auth/register", `{"email":"lindiwe@example.com","password":"secret1","name":"Lindiwe"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var issued struct {
		SessionToken string `json:"sessionToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issued))

	rec, _ = do(t, h, http.MethodPost, "/api/analyze-career", `{"userInput":"hi"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/api/analyze-career", `{"userInput":"I love fixing cars and working with my hands"}`, issued.SessionToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		CareerPaths []models.CareerPath `json:"careerPaths"`
		Source      string              `json:"source"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "fallback", out.Source)
	require.Len(t, out.CareerPaths, 2)
	assert.Equal(t, "Technology Consultant", out.CareerPaths[0].Title)
	assert.NotEmpty(t, out.CareerPaths[0].Institutions)
	assert.NotNil(t, out.CareerPaths[0].Subjects)

	rec, _ = do(t, h, http.MethodGet, "/api/analyses", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/analyses?limit=5", "", issued.SessionToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		Count    int                     `json:"count"`
		Analyses []models.AnalysisRecord `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hist))
	assert.Equal(t, 1, hist.Count)
	assert.Equal(t, models.SourceFallback, hist.Analyses[0].Source)
}

func TestRoutes_ServiceEndpoints(t *testing.T) {
	h, store := newTestRouter(t)

	rec, env := do(t, h, http.MethodGet, "/api/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Questly Career Guidance API"}`, string(env.Data))

	rec, _ = do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/api/request-mentor",
		`{"career_title":"Psychologist","user_name":"Naledi","user_email":"naledi@example.com","message":"Please help"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"success":true`)
	require.Len(t, store.mentors, 1)
	assert.Equal(t, models.MentorStatusPending, store.mentors[0].Status)

	rec, _ = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "questly_http_requests_total")
}

func TestCookieConfig(t *testing.T) {
	tests := []struct {
		sameSite string
		want     http.SameSite
	}{
		{sameSite: "lax", want: http.SameSiteLaxMode},
		{sameSite: "Strict", want: http.SameSiteStrictMode},
		{sameSite: "none", want: http.SameSiteNoneMode},
		{sameSite: "", want: http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.sameSite, func(t *testing.T) {
			c := CookieConfig(config.Session{CookieName: "sid", Secure: true, SameSite: tt.sameSite})
			assert.Equal(t, tt.want, c.SameSite)
			assert.Equal(t, "sid", c.Name)
			assert.True(t, c.Secure)
		})
	}
}

// Package federation обменивает идентификатор сессии внешнего провайдера
// входа на профиль пользователя.
package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/magabrotheeeer/questly/internal/models"
)

// SessionHeader — заголовок, в котором провайдеру передаётся идентификатор сессии.
const SessionHeader = "X-Session-ID"

// Client — HTTP‑клиент провайдера.
type Client struct {
	sessionDataURL string
	httpClient     *http.Client
}

// NewClient создаёт клиент провайдера с таймаутом на запрос.
func NewClient(sessionDataURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		sessionDataURL: sessionDataURL,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

type profileResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange запрашивает профиль по идентификатору сессии провайдера.
//
// Ответ провайдера, отличный от 200, означает недействительный идентификатор
// (models.ErrInvalidSessionID). Сетевой сбой и профиль без id или email
// оборачивают models.ErrUpstreamUnavailable.
func (c *Client) Exchange(ctx context.Context, sessionID string) (*models.Profile, error) {
	const op = "federation.Exchange"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sessionDataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set(SessionHeader, sessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, models.ErrInvalidSessionID
	}

	var p profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w: decode profile: %v", op, models.ErrUpstreamUnavailable, err)
	}
	if p.ID == "" || p.Email == "" {
		return nil, fmt.Errorf("%s: %w: incomplete profile", op, models.ErrUpstreamUnavailable)
	}

	return &models.Profile{
		ID:      p.ID,
		Email:   p.Email,
		Name:    p.Name,
		Picture: p.Picture,
	}, nil
}

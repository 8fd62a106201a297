// Package generation — клиент генеративной модели Gemini.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/magabrotheeeer/questly/internal/models"
)

// ErrEmptyResponse — модель ответила без текста (например, ответ заблокирован фильтрами).
var ErrEmptyResponse = errors.New("empty model response")

// Config — параметры генерации.
type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// Client вызывает модель с фиксированными параметрами генерации.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	config  *genai.GenerateContentConfig
}

// New создаёт клиент Gemini API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	const op = "generation.New"

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is required", op)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			TopP:            genai.Ptr(cfg.TopP),
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}, nil
}

// Generate отправляет запрос и возвращает текст ответа.
//
// Сбой вызова и истечение таймаута оборачивают models.ErrUpstreamUnavailable.
// Пустой ответ возвращается как ErrEmptyResponse.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "generation.Generate"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, models.ErrUpstreamUnavailable, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	return text, nil
}

// Disabled используется, когда ключ API не задан: каждый вызов
// возвращает models.ErrUpstreamUnavailable.
type Disabled struct{}

// Generate всегда сообщает о недоступности модели.
func (Disabled) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("generation.Disabled: %w", models.ErrUpstreamUnavailable)
}

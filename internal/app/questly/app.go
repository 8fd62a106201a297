// Package questly собирает зависимости сервиса Questly и запускает HTTP‑сервер.
package questly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/questly/internal/cache"
	"github.com/magabrotheeeer/questly/internal/careers"
	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/federation"
	"github.com/magabrotheeeer/questly/internal/generation"
	"github.com/magabrotheeeer/questly/internal/http/handlers/health"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
	"github.com/magabrotheeeer/questly/internal/metrics"
	"github.com/magabrotheeeer/questly/internal/migrations"
	"github.com/magabrotheeeer/questly/internal/rabbitmq"
	analysisservice "github.com/magabrotheeeer/questly/internal/services/analysis"
	authservice "github.com/magabrotheeeer/questly/internal/services/auth"
	mentorservice "github.com/magabrotheeeer/questly/internal/services/mentor"
	"github.com/magabrotheeeer/questly/internal/session"
	"github.com/magabrotheeeer/questly/internal/storage/mongodb"
	"github.com/magabrotheeeer/questly/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// Storage — хранилище учётных записей, сессий, истории и заявок.
type Storage interface {
	authservice.UserRepository
	session.Store
	analysisservice.AnalysisRepository
	mentorservice.MentorRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Services — сервисы, которые обслуживают маршруты.
type Services struct {
	Auth     *authservice.AuthService
	Sessions *session.Manager
	Analysis *analysisservice.AnalysisService
	Mentor   *mentorservice.MentorService
	Metrics  *metrics.Metrics
	Pingers  map[string]health.Pinger
}

// App — собранное приложение.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []func(context.Context) error
}

// New подключает хранилища и брокер, создаёт сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.questly.New"

	app := &App{logger: logger}

	store, err := OpenStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.closers = append(app.closers, store.Close)
	pingers := map[string]health.Pinger{"storage": store}

	var sessionStore session.Store = store
	if cfg.Session.Backend == config.SessionBackendRedis {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, func(context.Context) error { return redisCache.Close() })
		sessionStore = redisCache
		pingers["redis"] = redisCache
	}

	var generator analysisservice.Generator = generation.Disabled{}
	if cfg.Generation.APIKey != "" {
		generator, err = generation.New(ctx, generation.Config{
			APIKey:          cfg.Generation.APIKey,
			Model:           cfg.Generation.Model,
			BaseURL:         cfg.Generation.BaseURL,
			Timeout:         cfg.Generation.Timeout,
			Temperature:     cfg.Generation.Temperature,
			TopP:            cfg.Generation.TopP,
			MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		logger.Warn("generation api key is not set, analyses will return 503")
	}

	var provider authservice.ProfileProvider
	if cfg.Federation.SessionDataURL != "" {
		provider = federation.NewClient(cfg.Federation.SessionDataURL, cfg.Federation.Timeout)
	}

	var publisher mentorservice.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnRetries, cfg.RabbitMQ.ConnDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, func(context.Context) error { return conn.Close() })

		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pub := rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		app.closers = append(app.closers, func(context.Context) error { return pub.Close() })
		publisher = pub
	}

	m := metrics.New()
	sessions := session.NewManager(sessionStore, cfg.Session.TTL)

	svc := Services{
		Auth:     authservice.NewAuthService(store, sessions, provider, m, logger),
		Sessions: sessions,
		Analysis: analysisservice.NewAnalysisService(generator, careers.DefaultCatalog(), store, m, logger),
		Mentor:   mentorservice.NewMentorService(store, publisher, logger),
		Metrics:  m,
		Pingers:  pingers,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, svc)

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

// OpenStorage подключает хранилище выбранного драйвера.
// Для PostgreSQL перед началом работы применяются миграции.
func OpenStorage(ctx context.Context, cfg config.Storage, logger *slog.Logger) (Storage, error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		st, err := postgresql.New(ctx, cfg.PostgresDSN, cfg.OpTimeout)
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(st.DB, cfg.MigrationsPath); err != nil {
			_ = st.Close(ctx)
			return nil, err
		}
		logger.Info("storage connected", slog.String("driver", cfg.Driver))
		return st, nil
	case config.StorageMongo:
		st, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.OpTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("storage connected", slog.String("driver", cfg.Driver), slog.String("database", cfg.MongoDatabase))
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// CookieConfig переводит настройки сессии в атрибуты cookie.
func CookieConfig(cfg config.Session) session.CookieConfig {
	sameSite := http.SameSiteLaxMode
	switch strings.ToLower(cfg.SameSite) {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}
	return session.CookieConfig{
		Name:     cfg.CookieName,
		Secure:   cfg.Secure,
		SameSite: sameSite,
	}
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Error("failed to release resource", sl.Err(err))
		}
	}
	a.closers = nil
}

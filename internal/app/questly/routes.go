package questly

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/http/handlers/analyze"
	"github.com/magabrotheeeer/questly/internal/http/handlers/auth/exchange"
	"github.com/magabrotheeeer/questly/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/questly/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/questly/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/questly/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/questly/internal/http/handlers/health"
	"github.com/magabrotheeeer/questly/internal/http/handlers/history"
	"github.com/magabrotheeeer/questly/internal/http/handlers/mentor"
	"github.com/magabrotheeeer/questly/internal/http/handlers/root"
	"github.com/magabrotheeeer/questly/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services) {
	cookie := CookieConfig(cfg.Session)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		svc.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.HTTPServer.Timeout))

		r.Get("/", root.ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", register.New(logger, svc.Auth, cookie).ServeHTTP)
			r.Post("/login", login.New(logger, svc.Auth, cookie).ServeHTTP)
			r.Post("/session", exchange.New(logger, svc.Auth, cookie).ServeHTTP)
			r.Get("/me", me.New(logger, svc.Auth, cookie).ServeHTTP)
			r.Post("/logout", logout.New(logger, svc.Auth, cookie).ServeHTTP)
		})

		r.Post("/request-mentor", mentor.New(logger, svc.Mentor).ServeHTTP)

		// Группа с необязательной сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(svc.Sessions, cookie, logger))
			r.Post("/analyze-career", analyze.New(logger, svc.Analysis).ServeHTTP)

			r.With(middlewarectx.RequireSession(logger)).
				Get("/analyses", history.New(logger, svc.Analysis).ServeHTTP)
		})
	})

	r.Get("/healthz", health.New(logger, svc.Pingers).ServeHTTP)
	r.Handle("/metrics", svc.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

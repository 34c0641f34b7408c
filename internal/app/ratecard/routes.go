// Package ratecard предоставляет маршруты для основного приложения.
package ratecard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/creator-ratecard/internal/authgateway"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/analysis/status"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/analysis/submit"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/auth/cancel"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/health"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/handlers/outreach/start"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	outreachservice "github.com/magabrotheeeer/creator-ratecard/internal/services/outreach"
	ratecardservice "github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, registry *orchestrator.Registry,
	cards *ratecardservice.Service, authClient *authgateway.Client,
	sessionStore *session.Store, outreachService *outreachservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/analyze", submit.New(logger, registry, cards).ServeHTTP)
		r.Get("/analyze", status.New(logger, registry, cards).ServeHTTP)
		r.Post("/signup", signup.New(logger, authClient, sessionStore, registry, cards).ServeHTTP)
		r.Post("/login", login.New(logger, authClient, sessionStore, registry, cards).ServeHTTP)
		r.Post("/auth/cancel", cancel.New(logger, registry, cards).ServeHTTP)

		// Рассылка без сессионного middleware: сервис сам различает
		// отказ анониму и отказ при незавершенном онбординге
		r.Post("/outreach", start.New(logger, outreachService, registry).ServeHTTP)

		// Группа с проверкой токена сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessionStore, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, sessionStore, registry).ServeHTTP)
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

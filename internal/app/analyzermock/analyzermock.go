// Package analyzermock собирает мок-сервис анализа профилей: один
// обработчик POST /analyze с каноническим ответом и имитацией задержки.
package analyzermock

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-ratecard/internal/analyzer"
	"github.com/magabrotheeeer/creator-ratecard/internal/config"
)

// App — приложение мок-анализатора.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New создает приложение мок-анализатора.
func New(cfg *config.Config, logger *slog.Logger) *App {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Post("/analyze", analyzer.MockHandler(logger, cfg.DelayAnalyzer))

	srv := &http.Server{
		Addr:         cfg.AddressAnalyzer,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutAnalyzer,
		WriteTimeout: cfg.TimeoutAnalyzer,
	}

	return &App{
		server: srv,
		logger: logger,
	}
}

// Run запускает HTTP-сервер мок-анализатора.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("analyzer mock listening on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.Info("shutting down analyzer mock gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

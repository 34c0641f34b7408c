// Package auth собирает приложение auth-сервиса: postgres-хранилище
// пользователей, миграции и HTTP-сервер регистрации, входа и проверки токена.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/creator-ratecard/internal/authservice"
	"github.com/magabrotheeeer/creator-ratecard/internal/config"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-ratecard/internal/migrations"
	authservices "github.com/magabrotheeeer/creator-ratecard/internal/services/auth"
	"github.com/magabrotheeeer/creator-ratecard/internal/storage"
)

// App — приложение auth-сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New создает приложение auth-сервиса.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservices.NewAuthService(db, jwtMaker)
	server := authservice.NewServer(logger, authService)

	srv := &http.Server{
		Addr:         cfg.AddressAuth,
		Handler:      server.Router(),
		ReadTimeout:  cfg.TimeoutAuth,
		WriteTimeout: cfg.TimeoutAuth,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер auth-сервиса и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("auth service listening on", slog.String("address", a.server.Addr))
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
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down auth service gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

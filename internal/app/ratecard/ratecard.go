// Package ratecard собирает основное приложение: HTTP-сервер с машинами
// анализа лент, redis-хранилищем сессий и издателем заявок на рассылку.
package ratecard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/creator-ratecard/internal/analyzer"
	"github.com/magabrotheeeer/creator-ratecard/internal/authgateway"
	"github.com/magabrotheeeer/creator-ratecard/internal/cache"
	"github.com/magabrotheeeer/creator-ratecard/internal/config"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/outreach"
	ratecardservice "github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// App — основное приложение.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

// New создает приложение: подключает redis и RabbitMQ, собирает сервисы
// и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessionStore := session.NewStore(cacheRedis, cfg.TokenTTL)

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetOutreachQueues())
	if err != nil {
		return nil, err
	}

	analyzerClient := analyzer.NewClient("http://"+cfg.AddressAnalyzer, cfg.TimeoutAnalyzer)
	authClient := authgateway.NewClient("http://"+cfg.AddressAuth, cfg.TimeoutAuth)

	registry := orchestrator.NewRegistry(analyzerClient, logger)
	cards := ratecardservice.New(cfg.CommissionFeePct)
	outreachService := outreach.New(outreach.NewAMQPPublisher(amqpChannel), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, registry, cards, authClient, sessionStore, outreachService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		cache:    cacheRedis,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.amqpConn.Close()
		a.cache.Db.Close()
		return err
	}
}

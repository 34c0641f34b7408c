// Package outreach запускает массовую рассылку питчей брендам.
// Действие привилегированное: доступно только авторизованному посетителю
// с завершенным онбордингом, причем неудовлетворенное условие сообщается
// различимо — это часть пользовательского контракта.
package outreach

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// ErrAuthRequired возвращается для анонимного посетителя.
var ErrAuthRequired = errors.New("login required")

// ErrOnboardingIncomplete возвращается для авторизованного посетителя
// с незавершенным онбордингом.
var ErrOnboardingIncomplete = errors.New("onboarding incomplete")

// ErrNoAnalysis возвращается, когда рассылку запускают без готовой рейт-карты.
var ErrNoAnalysis = errors.New("no resolved analysis")

// Publisher описывает публикацию сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// AMQPPublisher публикует сообщения через канал RabbitMQ.
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher создает издателя поверх открытого канала.
func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// Publish отправляет JSON-сообщение в обменник.
func (p *AMQPPublisher) Publish(exchange, routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, exchange, routingKey, message)
}

// Service запускает рассылку: проверяет права и публикует заявку воркерам.
type Service struct {
	publisher Publisher
	log       *slog.Logger
}

// New создает сервис рассылки.
func New(publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		publisher: publisher,
		log:       log,
	}
}

// Start публикует заявку на рассылку для хэндла от имени сессии.
// Для анонима — ErrAuthRequired, при незавершенном онбординге —
// ErrOnboardingIncomplete; заявка в этих случаях не публикуется.
func (s *Service) Start(sess *models.Session, handle string) error {
	const op = "outreach.Start"

	if sess == nil {
		return fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}
	if !sess.OnboardingComplete {
		return fmt.Errorf("%s: %w", op, ErrOnboardingIncomplete)
	}
	if handle == "" {
		return fmt.Errorf("%s: %w", op, ErrNoAnalysis)
	}

	msg := models.OutreachRequest{
		Handle:      handle,
		UserUID:     sess.ID,
		Name:        sess.Name,
		Email:       sess.Email,
		Tags:        sess.Tags,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(rabbitmq.OutreachExchange, "bulk", msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("bulk outreach started",
		slog.String("handle", handle),
		slog.String("user_uid", sess.ID))
	return nil
}

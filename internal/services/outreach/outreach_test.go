package outreach

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestStart(t *testing.T) {
	publisher := new(PublisherMock)
	service := New(publisher, newNoopLogger())

	sess := &models.Session{
		ID:                 "uid-1",
		Name:               "Nina",
		Email:              "nina@example.com",
		Tags:               []string{"health", "food"},
		OnboardingComplete: true,
	}

	publisher.On("Publish", rabbitmq.OutreachExchange, "bulk", mock.MatchedBy(func(msg any) bool {
		req, ok := msg.(models.OutreachRequest)
		return ok && req.Handle == "foodie_nina" && req.UserUID == "uid-1"
	})).Return(nil)

	require.NoError(t, service.Start(sess, "foodie_nina"))
	publisher.AssertExpectations(t)
}

func TestStart_Anonymous(t *testing.T) {
	publisher := new(PublisherMock)
	service := New(publisher, newNoopLogger())

	err := service.Start(nil, "foodie_nina")

	require.ErrorIs(t, err, ErrAuthRequired)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_OnboardingIncomplete(t *testing.T) {
	publisher := new(PublisherMock)
	service := New(publisher, newNoopLogger())

	err := service.Start(&models.Session{ID: "uid-1", OnboardingComplete: false}, "foodie_nina")

	require.ErrorIs(t, err, ErrOnboardingIncomplete)
	assert.NotErrorIs(t, err, ErrAuthRequired, "anonymous and incomplete onboarding must stay distinguishable")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_NoResolvedAnalysis(t *testing.T) {
	publisher := new(PublisherMock)
	service := New(publisher, newNoopLogger())

	err := service.Start(&models.Session{ID: "uid-1", OnboardingComplete: true}, "")

	require.ErrorIs(t, err, ErrNoAnalysis)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_PublishError(t *testing.T) {
	publisher := new(PublisherMock)
	service := New(publisher, newNoopLogger())

	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := service.Start(&models.Session{ID: "uid-1", OnboardingComplete: true}, "foodie_nina")
	require.Error(t, err)
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	profile := models.Session{
		ID:                 "uid-1",
		Name:               "Nina",
		Email:              "nina@example.com",
		Role:               "Influencer",
		Location:           "Hyderabad, India",
		Tags:               []string{"health", "food"},
		OnboardingComplete: true,
		BankAdded:          false,
	}

	token, err := maker.GenerateToken(profile)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, profile, claims.Profile())
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken(models.Session{ID: "uid-1"})
	require.NoError(t, err)

	other := NewMaker("other-secret", time.Hour)
	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken(models.Session{ID: "uid-1"})
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	_, err := maker.ParseToken("not-a-token")
	require.Error(t, err)
}

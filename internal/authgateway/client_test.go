package authgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

func newAuthStub(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Signup(t *testing.T) {
	profile := models.Session{
		ID:                 "uid-1",
		Name:               "Nina",
		Email:              "nina@example.com",
		Role:               "Influencer",
		OnboardingComplete: true,
	}
	srv := newAuthStub(t, http.StatusOK, map[string]any{
		"status": "OK",
		"data":   map[string]any{"token": "tok-1", "profile": profile},
	})

	client := NewClient(srv.URL, time.Second)

	got, token, err := client.Signup(context.Background(), SignupRequest{
		Name:  "Nina",
		Email: "nina@example.com",
		Role:  "Influencer",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, profile, *got)
}

func TestClient_Signup_EmailTaken(t *testing.T) {
	srv := newAuthStub(t, http.StatusConflict, map[string]any{
		"status": "Error",
		"error":  "email already registered",
	})

	client := NewClient(srv.URL, time.Second)

	_, _, err := client.Signup(context.Background(), SignupRequest{Email: "nina@example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestClient_Signup_ValidationError(t *testing.T) {
	srv := newAuthStub(t, http.StatusUnprocessableEntity, map[string]any{
		"status": "Error",
		"error":  "field Email must be a valid email",
	})

	client := NewClient(srv.URL, time.Second)

	_, _, err := client.Signup(context.Background(), SignupRequest{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "field Email must be a valid email")
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	srv := newAuthStub(t, http.StatusUnauthorized, map[string]any{
		"status": "Error",
		"error":  "invalid email or password",
	})

	client := NewClient(srv.URL, time.Second)

	_, _, err := client.Login(context.Background(), "nina@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_Validate(t *testing.T) {
	profile := models.Session{ID: "uid-1", Email: "nina@example.com"}
	srv := newAuthStub(t, http.StatusOK, map[string]any{
		"status": "OK",
		"data":   map[string]any{"profile": profile},
	})

	client := NewClient(srv.URL, time.Second)

	got, err := client.Validate(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, profile, *got)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := newAuthStub(t, http.StatusInternalServerError, map[string]any{
		"status": "Error",
		"error":  "internal error",
	})

	client := NewClient(srv.URL, time.Second)

	_, _, err := client.Login(context.Background(), "nina@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/cache"
	"github.com/magabrotheeeer/creator-ratecard/internal/config"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}
	c, err := cache.InitServer(context.Background(), cfg)
	require.NoError(t, err)

	return NewStore(c, time.Hour), mr
}

func TestStore_SaveAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	profile := models.Session{
		ID:                 "uid-1",
		Name:               "Nina",
		Email:              "nina@example.com",
		Role:               "Influencer",
		OnboardingComplete: true,
	}
	require.NoError(t, store.Save(ctx, "tok-1", profile))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, profile, *got)
}

func TestStore_GetUnknownToken(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Get(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_InvalidateRevokesToken(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", models.Session{ID: "uid-1"}))
	require.NoError(t, store.Invalidate(ctx, "tok-1"))

	_, err := store.Get(ctx, "tok-1")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_TokenExpires(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", models.Session{ID: "uid-1"}))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "tok-1")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/creator-ratecard/internal/cache"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// ErrSessionNotFound возвращается для неизвестного или отозванного токена.
var ErrSessionNotFound = errors.New("session not found")

// Store — redis-хранилище выданных токенов. Запись создается при входе,
// удаляется при выходе; TTL совпадает со сроком жизни токена.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore создает хранилище сессий поверх redis-кэша.
func NewStore(c *cache.Cache, ttl time.Duration) *Store {
	return &Store{
		cache: c,
		ttl:   ttl,
	}
}

// Save сохраняет профиль по токену.
func (s *Store) Save(ctx context.Context, token string, profile models.Session) error {
	const op = "session.Save"
	if err := s.cache.Set(ctx, sessionKey(token), profile, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get возвращает профиль по токену или ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.Get"
	var profile models.Session
	found, err := s.cache.Get(ctx, sessionKey(token), &profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	return &profile, nil
}

// Invalidate отзывает токен.
func (s *Store) Invalidate(ctx context.Context, token string) error {
	const op = "session.Invalidate"
	if err := s.cache.Invalidate(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}

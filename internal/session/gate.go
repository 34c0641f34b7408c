// Package session отслеживает авторизацию посетителя: гейт текущей сессии
// для одной пользовательской ленты и redis-хранилище выданных токенов.
package session

import (
	"sync"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// Gate хранит текущую сессию одного посетителя и отвечает на проверки
// прав. Анонимный посетитель — гейт без сессии.
type Gate struct {
	mu      sync.RWMutex
	session *models.Session
}

// NewGate создает пустой (анонимный) гейт.
func NewGate() *Gate {
	return &Gate{}
}

// Set сохраняет сессию после успешного ответа auth-сервиса.
func (g *Gate) Set(profile models.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = &profile
}

// Clear сбрасывает сессию при выходе. Все привилегированные проверки
// после этого сразу отвечают отказом.
func (g *Gate) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
}

// Session возвращает копию текущей сессии или nil для анонима.
func (g *Gate) Session() *models.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return nil
	}
	copied := *g.session
	return &copied
}

// IsAuthenticated сообщает, авторизован ли посетитель.
func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session != nil
}

// CanAutoApply сообщает, доступно ли привилегированное действие:
// посетитель авторизован и онбординг завершен.
func (g *Gate) CanAutoApply() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session != nil && g.session.OnboardingComplete
}

// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// SessionClaims расширяет стандартные claims профилем пользователя,
// чтобы сервисы могли восстановить сессию без похода в базу.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// SessionClaims описывает данные профиля, хранящиеся в JWT.
type SessionClaims struct {
	Name                 string   `json:"name"`               // Отображаемое имя
	Email                string   `json:"email"`              // Электронная почта
	Role                 string   `json:"role"`               // Influencer/Creator или Brand
	Location             string   `json:"location,omitempty"` // Локация (опционально)
	Tags                 []string `json:"tags,omitempty"`     // Интересы/тематики
	OnboardingComplete   bool     `json:"onboarding_complete"`
	BankAdded            bool     `json:"bank_added"`
	jwt.RegisteredClaims          // Стандартные claims: Subject — uid пользователя, ExpiresAt и пр.
}

// Profile восстанавливает профиль сессии из claims токена.
func (c *SessionClaims) Profile() models.Session {
	return models.Session{
		ID:                 c.Subject,
		Name:               c.Name,
		Email:              c.Email,
		Role:               c.Role,
		Location:           c.Location,
		Tags:               c.Tags,
		OnboardingComplete: c.OnboardingComplete,
		BankAdded:          c.BankAdded,
	}
}

package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создает токен с профилем пользователя в claims.
	GenerateToken(profile models.Session) (string, error)
	// ParseToken проверяет подпись и срок токена и возвращает claims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker с секретным ключом и временем жизни токена.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает JWT с профилем сессии, подписанный секретным ключом.
func (j *MakerImpl) GenerateToken(profile models.Session) (string, error) {
	claims := SessionClaims{
		Name:               profile.Name,
		Email:              profile.Email,
		Role:               profile.Role,
		Location:           profile.Location,
		Tags:               profile.Tags,
		OnboardingComplete: profile.OnboardingComplete,
		BankAdded:          profile.BankAdded,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT, проверяет подпись и срок, возвращает SessionClaims.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

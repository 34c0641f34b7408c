// Package auth содержит бизнес-логику auth-сервиса: регистрация, вход
// и проверка токена сессии.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/password"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль,
// в том числе для аккаунтов без пароля (только magic-link).
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при регистрации на занятый email.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SignupParams — данные формы быстрого онбординга.
type SignupParams struct {
	Name     string
	Email    string
	Role     string
	Location string
	Tags     []string
	Password string // пустой пароль — вход только по magic-link
}

// AuthService отвечает за регистрацию, вход и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Signup создает пользователя и сразу выдает токен сессии. Быстрый онбординг
// считается завершенным, способ выплат на этом шаге не привязывается.
func (s *AuthService) Signup(ctx context.Context, params SignupParams) (*models.Session, string, error) {
	const op = "auth.Signup"

	var hash string
	if params.Password != "" {
		var err error
		hash, err = password.GetHash(params.Password)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
	}

	user := models.User{
		Name:               params.Name,
		Email:              params.Email,
		Role:               params.Role,
		Location:           params.Location,
		Tags:               params.Tags,
		PasswordHash:       hash,
		OnboardingComplete: true,
		BankAdded:          false,
	}

	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user.UID = uid
	profile := user.Profile()
	token, err := s.jwtMaker.GenerateToken(profile)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &profile, token, nil
}

// Login проверяет пароль пользователя и выдает токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.Session, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if user.PasswordHash == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	profile := user.Profile()
	token, err := s.jwtMaker.GenerateToken(profile)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &profile, token, nil
}

// Validate проверяет JWT и возвращает профиль сессии из его claims.
func (s *AuthService) Validate(_ context.Context, token string) (*models.Session, error) {
	const op = "auth.Validate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile := claims.Profile()
	return &profile, nil
}

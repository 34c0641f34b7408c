// Package authgateway — HTTP-клиент auth-сервиса: регистрация, вход
// и проверка токена. Сервис отвечает конвертом {status, error, data}.
package authgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при регистрации на занятый email.
var ErrEmailTaken = errors.New("email already registered")

// ErrValidation возвращается при ошибках валидации полей на стороне auth-сервиса.
// Текст ошибки содержит перечень нарушений по полям.
var ErrValidation = errors.New("validation failed")

// Client — клиент auth-сервиса.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент auth-сервиса.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SignupRequest — данные регистрации. Пароль опционален: пустой пароль
// означает вход только по magic-link.
type SignupRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Password string   `json:"password,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validateRequest struct {
	Token string `json:"token"`
}

type sessionPayload struct {
	Token   string         `json:"token"`
	Profile models.Session `json:"profile"`
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Signup регистрирует пользователя и возвращает профиль сессии с токеном.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.Session, string, error) {
	const op = "authgateway.Signup"
	var payload sessionPayload
	if err := c.do(ctx, "/signup", req, &payload); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &payload.Profile, payload.Token, nil
}

// Login выполняет вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, string, error) {
	const op = "authgateway.Login"
	var payload sessionPayload
	if err := c.do(ctx, "/login", loginRequest{Email: email, Password: password}, &payload); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &payload.Profile, payload.Token, nil
}

// Validate проверяет токен и возвращает профиль из его claims.
func (c *Client) Validate(ctx context.Context, token string) (*models.Session, error) {
	const op = "authgateway.Validate"
	var payload sessionPayload
	if err := c.do(ctx, "/validate", validateRequest{Token: token}, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payload.Profile, nil
}

func (c *Client) do(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusConflict:
		return ErrEmailTaken
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, env.Error)
	default:
		return fmt.Errorf("unexpected status %s: %s", resp.Status, env.Error)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return err
		}
	}
	return nil
}

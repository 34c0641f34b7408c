package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// ErrEmailExists возвращается при вставке пользователя с занятым email.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound возвращается, если пользователь не найден.
var ErrUserNotFound = errors.New("user not found")

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(user.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	passwordHash := sql.NullString{String: user.PasswordHash, Valid: user.PasswordHash != ""}

	var newUID string
	query := `INSERT INTO users (name, email, role, location, tags, password_hash,
			      onboarding_complete, bank_added)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Role, user.Location, tags, passwordHash,
		user.OnboardingComplete, user.BankAdded).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, role, location, tags, password_hash,
			      onboarding_complete, bank_added, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, role, location, tags, password_hash,
			      onboarding_complete, bank_added, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}

	var tags []byte
	var passwordHash sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.Role, &u.Location, &tags,
		&passwordHash, &u.OnboardingComplete, &u.BankAdded, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &u.Tags); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if passwordHash.Valid {
		u.PasswordHash = passwordHash.String
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	return u, nil
}

// Package middlewarectx содержит HTTP middleware: проверку токена сессии
// и ограничение частоты запросов.
//
// SessionMiddleware проверяет Bearer-токен по redis-хранилищу сессий:
// запись создается при входе и удаляется при выходе, поэтому выход
// мгновенно отзывает токен. При успехе профиль и токен кладутся в контекст.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionProfile — ключ профиля сессии в контексте.
	SessionProfile Key = "session_profile"
	// SessionToken — ключ токена сессии в контексте.
	SessionToken Key = "session_token"
)

// SessionFromContext возвращает профиль сессии из контекста запроса.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	profile, ok := ctx.Value(SessionProfile).(*models.Session)
	return profile, ok
}

// TokenFromContext возвращает токен сессии из контекста запроса.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionToken).(string)
	return token, ok
}

// SessionMiddleware возвращает middleware, проверяющий Bearer-токен в
// заголовке Authorization по хранилищу сессий.
func SessionMiddleware(store *session.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			profile, err := store.Get(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or revoked token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or revoked token"))
				return
			}

			ctx := context.WithValue(r.Context(), SessionProfile, profile)
			ctx = context.WithValue(ctx, SessionToken, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

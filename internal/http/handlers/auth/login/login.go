// Package login реализует HTTP-обработчик входа пользователя.
// Успешный вход, как и регистрация, возобновляет припаркованный анализ.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-ratecard/internal/authgateway"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/view"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// TimelineHeader — заголовок с идентификатором пользовательской ленты.
const TimelineHeader = "X-Timeline-ID"

// Request — структура данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger
	auth     Service
	store    *session.Store
	registry *orchestrator.Registry
	cards    *ratecard.Service
	validate *validator.Validate
}

// Service описывает контракт входа в auth-сервисе.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Session, string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, store *session.Store,
	registry *orchestrator.Registry, cards *ratecard.Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		store:    store,
		registry: registry,
		cards:    cards,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет учетные данные, открывает сессию и возобновляет припаркованный анализ.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email и пароль"
// @Param X-Timeline-ID header string false "Идентификатор ленты"
// @Success 200 {object} response.Response "Токен, профиль и снимок анализа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
	}

	profile, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authgateway.ErrInvalidCredentials) {
			log.Info("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("failed to login user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if err := h.store.Save(r.Context(), token, *profile); err != nil {
		log.Error("failed to save session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	timelineID := r.Header.Get(TimelineHeader)
	entry := h.registry.GetOrCreate(timelineID)
	entry.Gate.Set(*profile)
	snap := entry.Orchestrator.AuthSucceeded()

	analysis, err := view.BuildAnalysis(snap, h.cards)
	if err != nil {
		log.Error("failed to build analysis view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user logged in",
		slog.String("email", req.Email),
		slog.String("state", string(snap.State)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":    token,
		"profile":  profile,
		"analysis": analysis,
	}))
}

// Package signup реализует HTTP-обработчик регистрации нового пользователя.
// После успешной регистрации профиль сохраняется в хранилище сессий, гейт
// ленты авторизуется и припаркованный анализ, если он есть, возобновляется.
package signup

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

// Request — структура данных регистрации. Пароль опционален:
// регистрация без пароля означает вход только по magic-link.
type Request struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role" validate:"required,oneof=Influencer Creator Brand"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	auth     Service
	store    *session.Store
	registry *orchestrator.Registry
	cards    *ratecard.Service
	validate *validator.Validate
}

// Service описывает контракт регистрации в auth-сервисе.
type Service interface {
	Signup(ctx context.Context, req authgateway.SignupRequest) (*models.Session, string, error)
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
// @Summary Регистрация нового пользователя
// @Description Создает аккаунт, открывает сессию и возобновляет припаркованный анализ.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Param X-Timeline-ID header string false "Идентификатор ленты"
// @Success 200 {object} response.Response "Токен, профиль и снимок анализа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	profile, token, err := h.auth.Signup(r.Context(), authgateway.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Location: req.Location,
		Tags:     req.Tags,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authgateway.ErrEmailTaken) {
			log.Info("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		if errors.Is(err, authgateway.ErrValidation) {
			log.Error("auth service rejected signup", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("validation failed"))
			return
		}
		log.Error("failed to register user", sl.Err(err))
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

	log.Info("user registered",
		slog.String("email", req.Email),
		slog.String("state", string(snap.State)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":    token,
		"profile":  profile,
		"analysis": analysis,
	}))
}

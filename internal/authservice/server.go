// Package authservice — HTTP-сервер auth-сервиса: регистрация, вход и
// проверка токена. Отвечает конвертом {status, error, data}, который
// разбирает клиент authgateway основного API.
package authservice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/auth"
)

// Server — HTTP-сервер auth-сервиса.
type Server struct {
	log      *slog.Logger
	service  *auth.AuthService
	validate *validator.Validate
}

// NewServer создает сервер поверх бизнес-логики auth-сервиса.
func NewServer(log *slog.Logger, service *auth.AuthService) *Server {
	return &Server{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Router собирает маршруты auth-сервиса.
func (s *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/signup", s.handleSignup)
	router.Post("/login", s.handleLogin)
	router.Post("/validate", s.handleValidate)
	return router
}

type signupRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role" validate:"required,oneof=Influencer Creator Brand"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type validateRequest struct {
	Token string `json:"token" validate:"required"`
}

type sessionPayload struct {
	Token   string         `json:"token"`
	Profile models.Session `json:"profile"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "authservice.handleSignup"

	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
	}

	profile, token, err := s.service.Signup(r.Context(), auth.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Location: req.Location,
		Tags:     req.Tags,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			log.Info("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user registered", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(sessionPayload{Token: token, Profile: *profile}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "authservice.handleLogin"

	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
	}

	profile, token, err := s.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
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

	log.Info("user logged in", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(sessionPayload{Token: token, Profile: *profile}))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "authservice.handleValidate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	profile, err := s.service.Validate(r.Context(), req.Token)
	if err != nil {
		log.Error("invalid token", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid token"))
		return
	}

	render.JSON(w, r, response.OKWithData(sessionPayload{Profile: *profile}))
}

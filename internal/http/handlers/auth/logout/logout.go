// Package logout реализует HTTP-обработчик выхода: токен отзывается в
// хранилище сессий, гейт ленты сбрасывается, машина анализа возвращается
// в исходное состояние и стирает привязанный к сессии результат.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// TimelineHeader — заголовок с идентификатором пользовательской ленты.
const TimelineHeader = "X-Timeline-ID"

// Handler обрабатывает HTTP-запросы выхода из аккаунта.
type Handler struct {
	log      *slog.Logger
	store    *session.Store
	registry *orchestrator.Registry
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, store *session.Store, registry *orchestrator.Registry) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		registry: registry,
	}
}

// ServeHTTP godoc
// @Summary Выход из аккаунта
// @Description Отзывает токен и сбрасывает состояние анализа ленты.
// @Tags Auth
// @Produce  json
// @Param X-Timeline-ID header string false "Идентификатор ленты"
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Security BearerAuth
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.TokenFromContext(r.Context())
	if !ok {
		log.Error("missing session token in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.store.Invalidate(r.Context(), token); err != nil {
		log.Error("failed to invalidate session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	timelineID := r.Header.Get(TimelineHeader)
	if entry, found := h.registry.Get(timelineID); found {
		entry.Gate.Clear()
		entry.Orchestrator.SignOut()
	}

	log.Info("user logged out", slog.String("timeline_id", timelineID))
	render.JSON(w, r, response.OKWithData("logged out"))
}

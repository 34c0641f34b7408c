// Package cancel реализует HTTP-обработчик отказа от авторизации:
// посетитель закрыл окно входа, припаркованный запрос сбрасывается
// и анализатор так и не вызывается.
package cancel

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/view"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
)

// TimelineHeader — заголовок с идентификатором пользовательской ленты.
const TimelineHeader = "X-Timeline-ID"

// Handler обрабатывает HTTP-запросы отказа от авторизации.
type Handler struct {
	log      *slog.Logger
	registry *orchestrator.Registry
	cards    *ratecard.Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, registry *orchestrator.Registry, cards *ratecard.Service) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		cards:    cards,
	}
}

// ServeHTTP godoc
// @Summary Отказ от авторизации
// @Description Сбрасывает припаркованный запрос анализа без вызова анализатора.
// @Tags Auth
// @Produce  json
// @Param X-Timeline-ID header string true "Идентификатор ленты"
// @Success 200 {object} response.Response "Снимок машины анализа"
// @Router /auth/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	timelineID := r.Header.Get(TimelineHeader)

	snap := orchestrator.Snapshot{State: orchestrator.StateIdle}
	if entry, found := h.registry.Get(timelineID); found {
		snap = entry.Orchestrator.AuthCancelled()
	}

	analysis, err := view.BuildAnalysis(snap, h.cards)
	if err != nil {
		log.Error("failed to build analysis view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("auth cancelled", slog.String("timeline_id", timelineID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"timeline_id": timelineID,
		"analysis":    analysis,
	}))
}

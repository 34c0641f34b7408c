// Package status реализует HTTP-обработчик опроса состояния анализа:
// клиент опрашивает его, пока машина в состоянии analyzing.
package status

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

// Handler обрабатывает HTTP-запросы состояния анализа.
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
// @Summary Текущее состояние анализа
// @Description Возвращает снимок машины анализа для ленты из X-Timeline-ID.
// @Tags Analysis
// @Produce  json
// @Param X-Timeline-ID header string true "Идентификатор ленты"
// @Success 200 {object} response.Response "Снимок машины анализа"
// @Router /analyze [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	timelineID := r.Header.Get(TimelineHeader)

	snap := orchestrator.Snapshot{State: orchestrator.StateIdle}
	if entry, ok := h.registry.Get(timelineID); ok {
		snap = entry.Orchestrator.Snapshot()
	}

	analysis, err := view.BuildAnalysis(snap, h.cards)
	if err != nil {
		log.Error("failed to build analysis view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"timeline_id": timelineID,
		"analysis":    analysis,
	}))
}

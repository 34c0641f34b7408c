// Package submit реализует HTTP-обработчик отправки профиля на анализ.
//
// Обработчик нормализует ввод через машину анализа ленты: для анонимного
// посетителя запрос паркуется до авторизации, для авторизованного — сразу
// уходит в анализатор. Идентификатор ленты приходит в заголовке
// X-Timeline-ID; при его отсутствии выдается новый и возвращается клиенту.
package submit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/http/view"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
)

// TimelineHeader — заголовок с идентификатором пользовательской ленты.
const TimelineHeader = "X-Timeline-ID"

// Request — структура входных данных: сырой ввод, ссылка или хэндл.
type Request struct {
	Input string `json:"input"`
}

// Handler обрабатывает HTTP-запросы отправки профиля на анализ.
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
// @Summary Отправка профиля на анализ
// @Description Принимает ссылку на профиль или хэндл, возвращает снимок машины анализа.
// @Tags Analysis
// @Accept  json
// @Produce  json
// @Param request body Request true "Сырой ввод: ссылка или хэндл"
// @Param X-Timeline-ID header string false "Идентификатор ленты"
// @Success 200 {object} response.Response "Снимок машины анализа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Пустой или неразборчивый ввод"
// @Router /analyze [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.submit"

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

	timelineID := r.Header.Get(TimelineHeader)
	if timelineID == "" {
		timelineID = uuid.NewString()
	}
	w.Header().Set(TimelineHeader, timelineID)

	entry := h.registry.GetOrCreate(timelineID)
	snap := entry.Orchestrator.Submit(req.Input)

	if snap.State == orchestrator.StateFailed && snap.FailReason == orchestrator.FailInvalidInput {
		log.Info("submission rejected", slog.String("timeline_id", timelineID))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("paste a valid profile link or handle"))
		return
	}

	analysis, err := view.BuildAnalysis(snap, h.cards)
	if err != nil {
		log.Error("failed to build analysis view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("submission accepted",
		slog.String("timeline_id", timelineID),
		slog.String("handle", snap.Handle),
		slog.String("state", string(snap.State)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"timeline_id": timelineID,
		"analysis":    analysis,
	}))
}

// Package start реализует HTTP-обработчик запуска массовой рассылки.
//
// Обработчик нарочно стоит вне сессионного middleware: проверку прав
// выполняет сам сервис рассылки, чтобы анонимный посетитель и посетитель
// с незавершенным онбордингом получали различимые отказы.
package start

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/outreach"
)

// TimelineHeader — заголовок с идентификатором пользовательской ленты.
const TimelineHeader = "X-Timeline-ID"

// Handler обрабатывает HTTP-запросы запуска рассылки.
type Handler struct {
	log      *slog.Logger
	service  *outreach.Service
	registry *orchestrator.Registry
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service *outreach.Service, registry *orchestrator.Registry) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		registry: registry,
	}
}

// ServeHTTP godoc
// @Summary Запуск массовой рассылки питчей
// @Description Публикует заявку на рассылку для разрешенного хэндла текущей ленты.
// @Tags Outreach
// @Produce  json
// @Param X-Timeline-ID header string true "Идентификатор ленты"
// @Success 200 {object} response.Response "Заявка принята"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 403 {object} response.ErrorResponse "Онбординг не завершен"
// @Failure 409 {object} response.ErrorResponse "Нет разрешенного анализа"
// @Router /outreach [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.outreach.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	timelineID := r.Header.Get(TimelineHeader)

	var handle string
	var sess *models.Session
	if entry, found := h.registry.Get(timelineID); found {
		sess = entry.Gate.Session()
		if snap := entry.Orchestrator.Snapshot(); snap.State == orchestrator.StateResolved {
			handle = snap.Handle
		}
	}

	if err := h.service.Start(sess, handle); err != nil {
		switch {
		case errors.Is(err, outreach.ErrAuthRequired):
			log.Info("outreach rejected: login required", slog.String("timeline_id", timelineID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("login required"))
		case errors.Is(err, outreach.ErrOnboardingIncomplete):
			log.Info("outreach rejected: onboarding incomplete", slog.String("timeline_id", timelineID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("complete onboarding to start outreach"))
		case errors.Is(err, outreach.ErrNoAnalysis):
			log.Info("outreach rejected: no resolved analysis", slog.String("timeline_id", timelineID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("analyze a profile first"))
		default:
			log.Error("failed to start outreach", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("outreach started",
		slog.String("timeline_id", timelineID),
		slog.String("handle", handle))
	render.JSON(w, r, response.OKWithData("outreach started"))
}

package analyzer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// MockResult возвращает канонический ответ мок-анализатора для хэндла.
func MockResult(handle string) models.AnalysisResult {
	return models.AnalysisResult{
		Handle:         handle,
		Followers:      42000,
		AvgLikes:       2300,
		EngagementRate: 5.5,
		TopLocation:    "Hyderabad, India",
		Tags:           []string{"health", "food", "recipes"},
		EstimatedRates: models.EstimatedRates{
			Post:  7000,
			Story: 1800,
			Reel:  12000,
		},
		Confidence: 0.86,
	}
}

// MockHandler возвращает обработчик POST /analyze с имитацией сетевой
// задержки. Ответ — схема анализатора как есть, без конверта сервиса.
func MockHandler(log *slog.Logger, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "analyzer.MockHandler"

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Handle == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "handle is required"})
			return
		}

		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}

		log.Info("analysis served", slog.String("op", op), slog.String("handle", req.Handle))
		render.JSON(w, r, MockResult(req.Handle))
	}
}

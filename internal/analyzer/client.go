// Package analyzer содержит HTTP-клиент внешнего сервиса анализа профилей
// и мок-обработчик с каноническим ответом для локальной разработки.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// ErrAnalysisFailed возвращается при любой транспортной или сервисной ошибке
// анализатора. Повторный запуск — на стороне пользователя, без автоповтора.
var ErrAnalysisFailed = errors.New("analysis failed")

// Client — клиент сервиса анализа профилей.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент анализатора с таймаутом на весь запрос.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Handle string `json:"handle"`
}

// Analyze выполняет один вызов анализатора для хэндла. Вызов долгий
// (порядка секунды) и отменяется через контекст. Результаты не кэшируются:
// каждый вызов независим.
func (c *Client) Analyze(ctx context.Context, handle string) (*models.AnalysisResult, error) {
	const op = "analyzer.Analyze"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(analyzeRequest{Handle: handle}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, ErrAnalysisFailed, resp.Status)
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrAnalysisFailed, err)
	}
	return &result, nil
}

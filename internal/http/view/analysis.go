// Package view формирует JSON-представление снимка машины анализа
// для ответов submit- и status-обработчиков.
package view

import (
	"fmt"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
)

// Analysis — снимок машины анализа в ответе клиенту. Для разрешенного
// состояния добавляется рейт-карта с разбивкой комиссии.
type Analysis struct {
	State        string                 `json:"state"`
	Handle       string                 `json:"handle,omitempty"`
	AuthRequired bool                   `json:"auth_required,omitempty"`
	FailReason   string                 `json:"fail_reason,omitempty"`
	Result       *models.AnalysisResult `json:"result,omitempty"`
	RateCard     *models.RateCard       `json:"rate_card,omitempty"`
}

// BuildAnalysis собирает представление снимка.
func BuildAnalysis(snap orchestrator.Snapshot, cards *ratecard.Service) (Analysis, error) {
	const op = "view.BuildAnalysis"

	a := Analysis{
		State:      string(snap.State),
		Handle:     snap.Handle,
		FailReason: snap.FailReason,
	}

	switch snap.State {
	case orchestrator.StateAwaitingAuth:
		a.AuthRequired = true
	case orchestrator.StateResolved:
		card, err := cards.Build(snap.Result)
		if err != nil {
			return Analysis{}, fmt.Errorf("%s: %w", op, err)
		}
		a.Result = snap.Result
		a.RateCard = card
	}
	return a, nil
}

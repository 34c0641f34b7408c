// Package ratecard собирает рейт-карту: разбивку комиссии площадки
// по форматам размещения поверх результата анализа.
package ratecard

import (
	"fmt"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/commission"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

// Service строит рейт-карты с фиксированным процентом комиссии площадки.
type Service struct {
	feePct int
}

// New создает сервис рейт-карт с указанным процентом комиссии.
func New(feePct int) *Service {
	return &Service{feePct: feePct}
}

// Build возвращает рейт-карту по результату анализа.
func (s *Service) Build(result *models.AnalysisResult) (*models.RateCard, error) {
	const op = "ratecard.Build"

	post, err := line(result.EstimatedRates.Post, s.feePct)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	story, err := line(result.EstimatedRates.Story, s.feePct)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	reel, err := line(result.EstimatedRates.Reel, s.feePct)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.RateCard{
		Handle:      result.Handle,
		FeePct:      s.feePct,
		Post:        post,
		Story:       story,
		Reel:        reel,
		Confidence:  result.Confidence,
		TopLocation: result.TopLocation,
	}, nil
}

func line(gross, feePct int) (models.RateLine, error) {
	breakdown, err := commission.Split(gross, feePct)
	if err != nil {
		return models.RateLine{}, err
	}
	return models.RateLine{
		Gross: gross,
		Fee:   breakdown.Fee,
		Net:   breakdown.Net,
	}, nil
}

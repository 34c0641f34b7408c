package models

// EstimatedRates содержит оценку стоимости по форматам размещения.
type EstimatedRates struct {
	Post  int `json:"post"`
	Story int `json:"story"`
	Reel  int `json:"reel"`
}

// AnalysisResult — неизменяемый снимок ответа анализатора профиля.
type AnalysisResult struct {
	Handle         string         `json:"handle"`
	Followers      int            `json:"followers"`
	AvgLikes       int            `json:"avg_likes"`
	EngagementRate float64        `json:"engagement_rate"` // Процент, 0-100
	TopLocation    string         `json:"top_location"`
	Tags           []string       `json:"tags"`
	EstimatedRates EstimatedRates `json:"estimated_rates"`
	Confidence     float64        `json:"confidence"` // Доверие модели, 0-1
}

// RateLine — одна строка рейт-карты: брутто, комиссия площадки и чистая сумма.
type RateLine struct {
	Gross int `json:"gross"`
	Fee   int `json:"fee"`
	Net   int `json:"net"`
}

// RateCard — рейт-карта с разбивкой комиссии по форматам.
type RateCard struct {
	Handle      string   `json:"handle"`
	FeePct      int      `json:"fee_pct"`
	Post        RateLine `json:"post"`
	Story       RateLine `json:"story"`
	Reel        RateLine `json:"reel"`
	Confidence  float64  `json:"confidence"`
	TopLocation string   `json:"top_location"`
}

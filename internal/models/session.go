// Package models содержит доменные структуры сервиса:
// профиль сессии, результат анализа профиля, рейт-карту и заявку на рассылку.
// Структуры используются в бизнес-логике, HTTP-ответах и при работе с хранилищем.
package models

// Session представляет авторизованного посетителя.
// Создается по успешному ответу auth-сервиса и живет до явного выхода.
type Session struct {
	ID                 string   `json:"id"`       // Уникальный идентификатор пользователя
	Name               string   `json:"name"`     // Отображаемое имя
	Email              string   `json:"email"`    // Электронная почта
	Role               string   `json:"role"`     // Influencer/Creator или Brand
	Location           string   `json:"location"` // Заявленная локация (опционально)
	Tags               []string `json:"tags"`     // Интересы/тематики
	OnboardingComplete bool     `json:"onboardingComplete"`
	BankAdded          bool     `json:"bankAdded"`
}

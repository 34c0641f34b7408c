package models

import "time"

// User представляет запись пользователя в базе auth-сервиса.
type User struct {
	UID                string     // Уникальный идентификатор пользователя
	Name               string     // Полное имя
	Email              string     // Электронная почта (уникальная)
	Role               string     // Influencer/Creator или Brand
	Location           string     // Локация (опционально)
	Tags               []string   // Интересы/тематики
	PasswordHash       string     // bcrypt-хэш пароля, пустой для magic-link
	OnboardingComplete bool       // Флаг завершенного онбординга
	BankAdded          bool       // Флаг привязанного способа выплат
	CreatedAt          *time.Time // Дата регистрации
}

// Profile собирает из записи пользователя профиль сессии.
func (u *User) Profile() Session {
	return Session{
		ID:                 u.UID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Location:           u.Location,
		Tags:               u.Tags,
		OnboardingComplete: u.OnboardingComplete,
		BankAdded:          u.BankAdded,
	}
}

package models

import "time"

// OutreachRequest — сообщение для воркера массовой рассылки питчей брендам.
type OutreachRequest struct {
	Handle      string    `json:"handle"`
	UserUID     string    `json:"user_uid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Tags        []string  `json:"tags"`
	RequestedAt time.Time `json:"requested_at"`
}

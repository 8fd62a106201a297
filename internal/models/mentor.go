package models

import "time"

// MentorRequestStatus — состояние заявки на наставника.
type MentorRequestStatus string

// MentorStatusPending — единственное состояние, которое создаёт Questly.
// Остальные состояния принадлежат внешнему процессу обработки заявок.
const MentorStatusPending MentorRequestStatus = "pending"

// MentorRequest — заявка пользователя на связь с наставником.
type MentorRequest struct {
	ID          string              `json:"id"`
	CareerTitle string              `json:"career_title"`
	UserName    string              `json:"user_name"`
	UserEmail   string              `json:"user_email"`
	Message     string              `json:"message"`
	Status      MentorRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

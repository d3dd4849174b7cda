package models

import "time"

// Notification is a persisted in-app notification row. Email/SMS delivery is
// handled by the dispatcher and never blocks the emitting operation.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID       *uint `json:"order_id"`
	AppointmentID *uint `json:"appointment_id"`
	UserID        *uint `json:"user_id"`

	Title      string `gorm:"size:256;not null" json:"title"`
	MarkAsRead bool   `json:"mark_as_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmailLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `json:"user_id"`
	Email  string `gorm:"size:100" json:"email"`
	Title  string `gorm:"size:256" json:"title"`

	CreatedAt time.Time `json:"created_at"`
}

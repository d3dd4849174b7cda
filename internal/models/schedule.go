package models

import "time"

// Schedule is the work-shift interval for one Appointment, 1:1. The assigned
// provider stays nil (or the order owner as placeholder) until dispatch.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:24;default:'scheduled'" json:"status"`

	ShiftStarted bool   `json:"shift_started"`
	ShiftEnded   bool   `json:"shift_ended"`
	ShiftStatus  string `gorm:"size:24;default:'pending'" json:"shift_status"`

	TipAmount float64 `json:"tip_amount"`
	Colour    string  `gorm:"size:124;default:'#FFA500'" json:"colour"`

	// Count sequences schedules sharing one appointment. With the 1:1
	// constraint it is always 1; kept so a duplicate row is visible.
	Count int `gorm:"default:1" json:"count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

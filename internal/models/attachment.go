package models

import "time"

// Attachment is a file (photo, checklist) uploaded against an appointment
// and stored in the object store under FileKey.
type Attachment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	FileKey     string `gorm:"size:255;not null" json:"file_key"`
	FileName    string `gorm:"size:255" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`

	ShareWithCustomer bool `json:"share_with_customer"`
	ShareWithCleaner  bool `json:"share_with_cleaner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Phone        string `gorm:"size:24" json:"phone"`

	// admin, cleaner or customer. Customers are auto-provisioned at order
	// placement and have no dashboard access.
	Role            string `gorm:"size:20;default:'customer'" json:"role"`
	AccessDashboard bool   `json:"access_dashboard"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Appointment is one concrete dated occurrence of service delivery,
// materialized from its parent Order by the expansion engine. Rows are
// created strictly in occurrence order; reschedule math relies on that.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID uint  `gorm:"index" json:"order_id"`
	Order   Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"order"`

	ServiceLocationID uint            `json:"service_location_id"`
	ServiceLocation   ServiceLocation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_location"`

	Type      string `gorm:"size:24" json:"type"`
	StartTime string `gorm:"size:24" json:"start_time"`

	TotalHours  float64 `json:"total_hours"`
	TotalAmount float64 `json:"total_amount"`

	LatestReschedule int `gorm:"default:24" json:"latest_reschedule"`
	LatestCancel     int `gorm:"default:24" json:"latest_cancel"`

	AdditionalInfo string `gorm:"type:text" json:"additional_info"`
	Status         string `gorm:"size:48;default:'scheduled'" json:"status"`
	CustomerNotes  string `gorm:"size:250" json:"customer_notes"`
	CleanerNotes   string `gorm:"size:250" json:"cleaner_notes"`
	IsCancelled    bool   `json:"is_cancelled"`

	ThreeDayReminder  bool `json:"three_day_reminder"`
	OneDayReminder    bool `json:"one_day_reminder"`
	ThreeHourReminder bool `json:"three_hour_reminder"`

	Latitude  string `gorm:"size:124" json:"latitude"`
	Longitude string `gorm:"size:124" json:"longitude"`

	AppointmentDateTime time.Time `gorm:"index" json:"appointment_date_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentItem is the per-occurrence copy of an order item snapshot.
type AppointmentItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ItemID        uint `json:"item_id"`
	Item          Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"item"`

	Quantity uint    `gorm:"default:1" json:"quantity"`
	Price    float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentExtra struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	AppointmentID uint  `gorm:"index" json:"appointment_id"`
	ExtraID       uint  `json:"extra_id"`
	Extra         Extra `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"extra"`

	Quantity uint    `gorm:"default:1" json:"quantity"`
	Price    float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

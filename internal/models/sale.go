package models

import "time"

// Sale is the billing ledger for one Appointment: total owed and the
// cumulative amount collected so far.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	Amount float64 `json:"amount"`
	Paid   float64 `json:"paid"`
	Status string  `gorm:"size:24;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentSale is one capture attempt against a Sale. The first one per order
// is an authorization hold (is_first, not yet captured) placed at order time.
type PaymentSale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SaleID uint `gorm:"index" json:"sale_id"`
	Sale   Sale `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sale"`

	Mode       string  `gorm:"size:48;default:'card'" json:"mode"`
	Capture    string  `gorm:"size:48" json:"capture"`
	IsCaptured bool    `json:"is_captured"`
	IsFirst    bool    `json:"is_first"`
	Amount     float64 `json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentCustomer links an order to the gateway-side customer created while
// authorizing the first payment; later charges bill against it.
type PaymentCustomer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID uint   `gorm:"index" json:"order_id"`
	UserID  *uint  `json:"user_id"`
	Email   string `gorm:"size:100" json:"email"`

	CustomerRef string `gorm:"size:148;not null" json:"customer_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

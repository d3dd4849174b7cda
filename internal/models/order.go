package models

import "time"

// RecurrenceRule defines how many appointments an order expands into and
// their spacing. Immutable after the order is placed.
type RecurrenceRule struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Type  string `gorm:"size:48;not null" json:"type"`
	Title string `gorm:"size:256" json:"title"`

	DiscountPercent uint `json:"discount_percent"`
	DiscountAmount  uint `json:"discount_amount"`

	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	RecurEndDate *time.Time `json:"recur_end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactInfo struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:48;not null" json:"first_name"`
	LastName  string `gorm:"size:48;not null" json:"last_name"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Phone     string `gorm:"size:24;not null" json:"phone"`

	HowToEnterOnPremise string `gorm:"size:256" json:"how_to_enter_on_premise"`
	HasParkingSpot      bool   `json:"has_parking_spot"`
	HasPets             bool   `json:"has_pets"`
	HowDidYouHearAboutUs string `gorm:"size:256" json:"how_did_you_hear_about_us"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceLocation is an owned value copy, never shared between an order and
// its appointments or between two appointments.
type ServiceLocation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StreetAddress string `gorm:"size:128;not null" json:"street_address"`
	AptSuite      string `gorm:"size:128" json:"apt_suite"`
	City          string `gorm:"size:48" json:"city"`
	State         string `gorm:"size:48" json:"state"`
	ZipCode       string `gorm:"size:16" json:"zip_code"`
	LatLong       string `gorm:"size:56" json:"lat_long"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order is the parent booking request. One Order expands into 1..N
// appointments according to its recurrence rule.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ContactInfoID uint        `json:"contact_info_id"`
	ContactInfo   ContactInfo `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contact_info"`

	RecurrenceRuleID uint           `json:"recurrence_rule_id"`
	RecurrenceRule   RecurrenceRule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"recurrence_rule"`

	ServiceLocationID uint            `json:"service_location_id"`
	ServiceLocation   ServiceLocation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_location"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Type      string `gorm:"size:24" json:"type"`
	StartTime string `gorm:"size:24;not null" json:"start_time"`

	TotalHours  float64 `json:"total_hours"`
	TotalAmount float64 `json:"total_amount"`

	LatestReschedule int `gorm:"default:24" json:"latest_reschedule"`
	LatestCancel     int `gorm:"default:24" json:"latest_cancel"`

	AdditionalInfo string `gorm:"type:text" json:"additional_info"`
	Status         string `gorm:"size:48;default:'unscheduled'" json:"status"`
	Colour         string `gorm:"size:124;default:'#FFA500'" json:"colour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is the order-level priced snapshot of one item selection.
// Price is captured at selection time and never re-derived from the catalog.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `json:"order_id"`
	ItemID  uint  `json:"item_id"`
	Item    Item  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"item"`

	Quantity uint    `gorm:"default:1" json:"quantity"`
	Price    float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderExtra snapshots one extra selection. Unlike OrderItem, Price holds the
// line total (unit price * quantity).
type OrderExtra struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `json:"order_id"`
	ExtraID uint  `json:"extra_id"`
	Extra   Extra `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"extra"`

	Quantity uint    `gorm:"default:1" json:"quantity"`
	Price    float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

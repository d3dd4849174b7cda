package models

import "time"

type Tax struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:64;default:'State Tax'" json:"name"`
	TaxCode       string `gorm:"size:64;uniqueIndex" json:"tax_code"`
	TaxCodeShort  string `gorm:"size:24" json:"tax_code_short"`
	Rate          uint   `json:"rate"`
	AdditionalInfo string `gorm:"size:256" json:"additional_info"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:128;not null" json:"name"`
	Slug        string `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"size:128" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:24;default:'draft'" json:"status"`
	Type        string `gorm:"size:24;default:'regular'" json:"type"`
	Colour      string `gorm:"size:128;default:'#FFA500'" json:"colour"`

	TaxID *uint `json:"tax_id"`
	Tax   *Tax  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tax"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Package struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Title string `gorm:"size:128;not null" json:"title"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item belongs to a Package; price carries an optional percent discount.
type Item struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PackageID uint    `json:"package_id"`
	Package   Package `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"package"`

	Title           string  `gorm:"size:128;not null" json:"title"`
	TimeHrs         float64 `json:"time_hrs"`
	Price           float64 `json:"price"`
	DiscountPercent uint    `json:"discount_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Extra belongs directly to a Service and is quantity-priced.
type Extra struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Title   string  `gorm:"size:128;not null" json:"title"`
	TimeHrs float64 `json:"time_hrs"`
	Price   float64 `json:"price"`
	ToolTip string  `gorm:"size:256" json:"tool_tip"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

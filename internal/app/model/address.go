package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Label        string         `gorm:"size:100" json:"label"` // e.g. "Home", "Office"
	FirstName    string         `gorm:"size:100;not null" json:"first_name"`
	LastName     string         `gorm:"size:100;not null" json:"last_name"`
	Company      string         `gorm:"size:150" json:"company"`
	AddressLine1 string         `gorm:"size:255;not null" json:"address_line1"`
	AddressLine2 string         `gorm:"size:255" json:"address_line2"`
	City         string         `gorm:"size:100;not null" json:"city"`
	PostalCode   string         `gorm:"size:10;not null" json:"postal_code"`
	Country      string         `gorm:"size:100;default:'Polska'" json:"country"`
	Phone        string         `gorm:"size:30" json:"phone"`
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

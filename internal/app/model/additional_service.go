package model

import (
	"time"

	"gorm.io/gorm"
)

// AdditionalService is an extra sewn-in option (e.g. a leash hole or name
// embroidery) that can be selected for a cart line. Its price is added once
// per line, not per unit.
type AdditionalService struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null;default:0" json:"price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdditionalService) TableName() string {
	return "additional_services"
}

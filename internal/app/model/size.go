package model

import (
	"time"

	"gorm.io/gorm"
)

// Size is a garment size. Its price modifier is added to the product base
// price when computing a cart line's price per item.
type Size struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PriceModifier float64        `gorm:"default:0" json:"price_modifier"`
	Available     bool           `gorm:"default:true" json:"available"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Size) TableName() string {
	return "sizes"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Color struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	// Custom colors are sewn on request and surface a note in the storefront
	Custom    bool           `gorm:"default:false" json:"custom"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Color) TableName() string {
	return "colors"
}

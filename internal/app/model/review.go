package model

import (
	"time"

	"gorm.io/gorm"
)

// ClientReview is a storefront testimonial. Only approved reviews are served
// to the public pages; moderation happens in the back office.
type ClientReview struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ClientName string         `gorm:"size:100;not null" json:"client_name"`
	Email      string         `gorm:"size:255" json:"email,omitempty"`
	Rating     int            `gorm:"not null" json:"rating"` // 1-5
	Content    string         `gorm:"type:text;not null" json:"content"`
	Approved   bool           `gorm:"default:false" json:"approved"`
	Featured   bool           `gorm:"default:false" json:"featured"`
	ImageID    *uint          `gorm:"index" json:"image_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Image *Image `gorm:"foreignKey:ImageID" json:"image,omitempty"`
}

func (ClientReview) TableName() string {
	return "client_reviews"
}

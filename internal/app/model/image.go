package model

import (
	"time"

	"gorm.io/gorm"
)

// Image is an uploaded file stored in S3 and referenced by catalog entities.
type Image struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Filename     string         `gorm:"not null" json:"filename"` // storage key
	OriginalName string         `json:"original_name"`
	MimeType     string         `gorm:"size:100" json:"mime_type"`
	Size         int64          `json:"size"`
	URL          string         `gorm:"not null" json:"url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Image) TableName() string {
	return "images"
}

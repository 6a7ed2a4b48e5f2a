package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a color rendition of a product with its own image set.
type ProductVariant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ColorID   uint           `gorm:"not null;index" json:"color_id"`
	Name      string         `gorm:"not null" json:"name"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	Color   Color   `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	Images  []Image `gorm:"many2many:product_variant_images" json:"images,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	ShortDescription string         `gorm:"size:500" json:"short_description"`
	Description      string         `gorm:"type:text" json:"description"`
	Price            float64        `gorm:"not null" json:"price"`
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`
	MaterialID       *uint          `gorm:"index" json:"material_id,omitempty"`
	Active           bool           `gorm:"default:true" json:"active"`
	Featured         bool           `gorm:"default:false" json:"featured"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Category           Category            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Material           *Material           `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Images             []Image             `gorm:"many2many:product_images" json:"images,omitempty"`
	Variants           []ProductVariant    `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	AdditionalServices []AdditionalService `gorm:"many2many:product_additional_services" json:"additional_services,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// CartSession is a shopping cart. Guests own one through the X-Session-ID
// UUID; on login the session is adopted by the user.
type CartSession struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	SessionID         string         `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID            *uint          `gorm:"index" json:"user_id,omitempty"`
	AppliedDiscountID *uint          `gorm:"index" json:"applied_discount_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	AppliedDiscount *DiscountCode `gorm:"foreignKey:AppliedDiscountID" json:"applied_discount,omitempty"`
	Items           []CartItem    `gorm:"foreignKey:CartSessionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (CartSession) TableName() string {
	return "cart_sessions"
}

type CartItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CartSessionID uint           `gorm:"not null;index" json:"cart_session_id"`
	ProductID     uint           `gorm:"not null;index" json:"product_id"`
	VariantID     *uint          `gorm:"index" json:"variant_id,omitempty"`
	SizeID        *uint          `gorm:"index" json:"size_id,omitempty"`
	Quantity      int            `gorm:"not null;default:1" json:"quantity"`
	// Captured when the item is added: product price + size modifier
	PricePerItem float64        `gorm:"not null" json:"price_per_item"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Product  Product             `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant  *ProductVariant     `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Size     *Size               `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	Services []AdditionalService `gorm:"many2many:cart_item_services" json:"services,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ServicesTotal sums the selected per-line service prices
func (i *CartItem) ServicesTotal() float64 {
	var total float64
	for _, s := range i.Services {
		total += s.Price
	}
	return total
}

// LineTotal is price_per_item * quantity + services
func (i *CartItem) LineTotal() float64 {
	return i.PricePerItem*float64(i.Quantity) + i.ServicesTotal()
}

// Cart quantity bounds enforced on every add/update
const (
	MinCartQuantity = 1
	MaxCartQuantity = 99
)

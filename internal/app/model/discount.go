package model

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

type DiscountCode struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Description   string         `gorm:"type:text" json:"description"`
	DiscountType  DiscountType   `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue float64        `gorm:"not null" json:"discount_value"`
	MinOrderValue float64        `gorm:"default:0" json:"min_order_value"`
	MaxUses       *int           `json:"max_uses,omitempty"` // nil = unlimited
	UsedCount     int            `gorm:"default:0" json:"used_count"`
	Active        bool           `gorm:"default:true" json:"active"`
	StartsAt      *time.Time     `json:"starts_at,omitempty"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// Usable reports whether the code may be applied at the given time.
// Subtotal checks are the cart service's job.
func (d *DiscountCode) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	if d.MaxUses != nil && d.UsedCount >= *d.MaxUses {
		return false
	}
	return true
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderStatuses lists every accepted status. The admin API allows setting
// any of them regardless of the current state; the happy path is
// pending -> processing -> shipped -> delivered, with cancelled reachable
// from any non-terminal state.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is one of the five known statuses
func ValidOrderStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusLabelsPL are the customer-facing Polish labels
var StatusLabelsPL = map[OrderStatus]string{
	OrderStatusPending:    "Oczekujące",
	OrderStatusProcessing: "W realizacji",
	OrderStatusShipped:    "Wysłane",
	OrderStatusDelivered:  "Dostarczone",
	OrderStatusCancelled:  "Anulowane",
}

// StatusLabelsEN are the admin-facing English labels
var StatusLabelsEN = map[OrderStatus]string{
	OrderStatusPending:    "Pending",
	OrderStatusProcessing: "Processing",
	OrderStatusShipped:    "Shipped",
	OrderStatusDelivered:  "Delivered",
	OrderStatusCancelled:  "Cancelled",
}

// OrderAddress is a point-in-time copy of a shipping or billing address
type OrderAddress struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Company      string `gorm:"size:150" json:"company"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	PostalCode   string `gorm:"size:10" json:"postal_code"`
	Country      string `gorm:"size:100" json:"country"`
	Phone        string `gorm:"size:30" json:"phone"`
}

// Order is an immutable snapshot of a cart at checkout time. After creation
// only the status fields change, and only through the admin API.
type Order struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	UserID     *uint  `gorm:"index" json:"user_id,omitempty"`
	PublicHash *string `gorm:"uniqueIndex" json:"public_hash,omitempty"` // set for guest orders only
	Email      string `gorm:"not null" json:"email"`
	Phone      string `gorm:"size:30" json:"phone"`

	Subtotal       float64 `gorm:"not null" json:"subtotal"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`
	TotalPrice     float64 `gorm:"not null" json:"total_price"`
	DiscountCode   string  `gorm:"size:50" json:"discount_code,omitempty"`

	Status        OrderStatus   `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentMethod string        `gorm:"size:50" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`

	ShippingAddress OrderAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	SameAsShipping  bool         `gorm:"default:true" json:"same_as_shipping"`

	RequiresInvoice bool   `gorm:"default:false" json:"requires_invoice"`
	NIP             string `gorm:"size:10" json:"nip,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the denormalized line snapshot so catalog edits after
// checkout never rewrite order history.
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`

	ProductName  string  `gorm:"not null" json:"product_name"`
	VariantName  string  `json:"variant_name,omitempty"`
	ColorName    string  `json:"color_name,omitempty"`
	SizeName     string  `json:"size_name,omitempty"`
	ServicesNote string  `gorm:"type:text" json:"services_note,omitempty"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	PricePerItem float64 `gorm:"not null" json:"price_per_item"`
	ServicesCost float64 `gorm:"default:0" json:"services_cost"`
	TotalPrice   float64 `gorm:"not null" json:"total_price"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

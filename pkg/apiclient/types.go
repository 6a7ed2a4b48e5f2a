package apiclient

import "time"

// API resource shapes, mirroring the server's JSON

type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type Image struct {
	ID           uint   `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Image       *Image `json:"image,omitempty"`
}

type Size struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PriceModifier float64 `json:"price_modifier"`
	Available     bool    `json:"available"`
}

type Color struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

type AdditionalService struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type ProductVariant struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	ColorID   uint    `json:"color_id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"is_default"`
	Color     Color   `json:"color"`
	Images    []Image `json:"images,omitempty"`
}

type Product struct {
	ID                 uint                `json:"id"`
	Name               string              `json:"name"`
	ShortDescription   string              `json:"short_description"`
	Description        string              `json:"description"`
	Price              float64             `json:"price"`
	CategoryID         uint                `json:"category_id"`
	Active             bool                `json:"active"`
	Featured           bool                `json:"featured"`
	Category           Category            `json:"category"`
	Images             []Image             `json:"images,omitempty"`
	Variants           []ProductVariant    `json:"variants,omitempty"`
	AdditionalServices []AdditionalService `json:"additional_services,omitempty"`
}

type DiscountCode struct {
	ID            uint       `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	MinOrderValue float64    `json:"min_order_value"`
	MaxUses       *int       `json:"max_uses,omitempty"`
	UsedCount     int        `json:"used_count"`
	Active        bool       `json:"active"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type CartItem struct {
	ID           uint                `json:"id"`
	ProductID    uint                `json:"product_id"`
	VariantID    *uint               `json:"variant_id,omitempty"`
	SizeID       *uint               `json:"size_id,omitempty"`
	Quantity     int                 `json:"quantity"`
	PricePerItem float64             `json:"price_per_item"`
	Product      Product             `json:"product"`
	Variant      *ProductVariant     `json:"variant,omitempty"`
	Size         *Size               `json:"size,omitempty"`
	Services     []AdditionalService `json:"services,omitempty"`
}

// Cart is the server-computed snapshot; totals are authoritative
type Cart struct {
	SessionID       string        `json:"session_id"`
	Items           []CartItem    `json:"items"`
	AppliedDiscount *DiscountCode `json:"applied_discount,omitempty"`
	TotalItems      int           `json:"total_items"`
	Subtotal        float64       `json:"subtotal"`
	DiscountAmount  float64       `json:"discount_amount"`
	TotalPrice      float64       `json:"total_price"`
}

type OrderAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

type OrderItem struct {
	ID           uint    `json:"id"`
	ProductName  string  `json:"product_name"`
	VariantName  string  `json:"variant_name,omitempty"`
	ColorName    string  `json:"color_name,omitempty"`
	SizeName     string  `json:"size_name,omitempty"`
	ServicesNote string  `json:"services_note,omitempty"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
	ServicesCost float64 `json:"services_cost"`
	TotalPrice   float64 `json:"total_price"`
}

type Order struct {
	ID              uint         `json:"id"`
	PublicHash      *string      `json:"public_hash,omitempty"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Subtotal        float64      `json:"subtotal"`
	DiscountAmount  float64      `json:"discount_amount"`
	TotalPrice      float64      `json:"total_price"`
	DiscountCode    string       `json:"discount_code,omitempty"`
	Status          string       `json:"status"`
	PaymentMethod   string       `json:"payment_method"`
	PaymentStatus   string       `json:"payment_status"`
	ShippingAddress OrderAddress `json:"shipping_address"`
	BillingAddress  OrderAddress `json:"billing_address"`
	RequiresInvoice bool         `json:"requires_invoice"`
	NIP             string       `json:"nip,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	Items           []OrderItem  `json:"items"`
}

type ClientReview struct {
	ID         uint   `json:"id"`
	ClientName string `json:"client_name"`
	Rating     int    `json:"rating"`
	Content    string `json:"content"`
	Approved   bool   `json:"approved"`
	Featured   bool   `json:"featured"`
	Image      *Image `json:"image,omitempty"`
}

// Request payloads

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AddItemRequest struct {
	ProductID  uint   `json:"product_id"`
	VariantID  *uint  `json:"variant_id,omitempty"`
	SizeID     *uint  `json:"size_id,omitempty"`
	ServiceIDs []uint `json:"service_ids,omitempty"`
	Quantity   int    `json:"quantity"`
}

type CheckoutRequest struct {
	Email           string        `json:"email"`
	Phone           string        `json:"phone,omitempty"`
	ShippingAddress OrderAddress  `json:"shipping_address"`
	BillingAddress  *OrderAddress `json:"billing_address,omitempty"`
	SameAsShipping  bool          `json:"same_as_shipping"`
	PaymentMethod   string        `json:"payment_method,omitempty"`
	RequiresInvoice bool          `json:"requires_invoice"`
	NIP             string        `json:"nip,omitempty"`
}

// List envelopes

type ProductList struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

type ReviewList struct {
	Reviews []ClientReview `json:"reviews"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

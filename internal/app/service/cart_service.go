package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity     = errors.New("quantity must be between 1 and 99")
	ErrInvalidVariant      = errors.New("variant does not belong to this product")
	ErrSizeUnavailable     = errors.New("size is not available")
	ErrServiceNotOffered   = errors.New("service is not offered for this product")
	ErrDiscountNotFound    = errors.New("discount code not found")
	ErrDiscountNotUsable   = errors.New("discount code cannot be used")
	ErrDiscountMinValue    = errors.New("cart subtotal is below the code's minimum order value")
)

// Cart is the server-computed snapshot returned to clients. Totals are never
// taken from the client; they are recomputed from the stored lines on every
// read so a stale or tampered figure can't survive a round trip.
type Cart struct {
	SessionID       string              `json:"session_id"`
	Items           []model.CartItem    `json:"items"`
	AppliedDiscount *model.DiscountCode `json:"applied_discount,omitempty"`
	TotalItems      int                 `json:"total_items"`
	Subtotal        float64             `json:"subtotal"`
	DiscountAmount  float64             `json:"discount_amount"`
	TotalPrice      float64             `json:"total_price"`
}

type AddItemRequest struct {
	ProductID  uint   `json:"product_id" binding:"required"`
	VariantID  *uint  `json:"variant_id"`
	SizeID     *uint  `json:"size_id"`
	ServiceIDs []uint `json:"service_ids"`
	Quantity   int    `json:"quantity"`
}

type CartService interface {
	GetCart(sessionID string) (*Cart, error)
	AddItem(sessionID string, req AddItemRequest) (*Cart, error)
	UpdateItemQuantity(sessionID string, itemID uint, quantity int) (*Cart, error)
	RemoveItem(sessionID string, itemID uint) (*Cart, error)
	Clear(sessionID string) (*Cart, error)
	ApplyDiscount(sessionID, code string) (*Cart, error)
	RemoveDiscount(sessionID string) (*Cart, error)
	AdoptSession(sessionID string, userID uint) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	sizeRepo     repository.SizeRepository
	serviceRepo  repository.AdditionalServiceRepository
	discountRepo repository.DiscountRepository
	now          func() time.Time
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	sizeRepo repository.SizeRepository,
	serviceRepo repository.AdditionalServiceRepository,
	discountRepo repository.DiscountRepository,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
		serviceRepo:  serviceRepo,
		discountRepo: discountRepo,
		now:          time.Now,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// buildCart computes the snapshot from a loaded session. If the applied
// discount has since become unusable it still shows on the cart but
// contributes nothing; checkout revalidates it properly.
func (s *cartService) buildCart(session *model.CartSession) *Cart {
	cart := &Cart{
		SessionID:       session.SessionID,
		Items:           session.Items,
		AppliedDiscount: session.AppliedDiscount,
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	var subtotal float64
	for i := range session.Items {
		cart.TotalItems += session.Items[i].Quantity
		subtotal += session.Items[i].LineTotal()
	}
	cart.Subtotal = roundCents(subtotal)
	cart.DiscountAmount = roundCents(discountAmount(session.AppliedDiscount, cart.Subtotal, s.now()))
	cart.TotalPrice = roundCents(cart.Subtotal - cart.DiscountAmount)
	return cart
}

// discountAmount computes the reduction a code grants on a subtotal.
// A fixed amount is capped at the subtotal so the total never goes negative.
func discountAmount(code *model.DiscountCode, subtotal float64, now time.Time) float64 {
	if code == nil || !code.Usable(now) || subtotal < code.MinOrderValue {
		return 0
	}
	switch code.DiscountType {
	case model.DiscountPercentage:
		return subtotal * code.DiscountValue / 100
	case model.DiscountFixedAmount:
		if code.DiscountValue > subtotal {
			return subtotal
		}
		return code.DiscountValue
	}
	return 0
}

func (s *cartService) GetCart(sessionID string) (*Cart, error) {
	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildCart(session), nil
}

func (s *cartService) AddItem(sessionID string, req AddItemRequest) (*Cart, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < model.MinCartQuantity || req.Quantity > model.MaxCartQuantity {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.Active {
		return nil, ErrProductNotFound
	}

	if req.VariantID != nil {
		if !variantBelongsTo(product, *req.VariantID) {
			return nil, ErrInvalidVariant
		}
	}

	price := product.Price
	if req.SizeID != nil {
		size, err := s.sizeRepo.FindByID(*req.SizeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSizeNotFound
			}
			return nil, err
		}
		if !size.Available {
			return nil, ErrSizeUnavailable
		}
		price += size.PriceModifier
	}

	var services []model.AdditionalService
	if len(req.ServiceIDs) > 0 {
		services, err = s.serviceRepo.FindByIDs(req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		if len(services) != len(uniqueIDs(req.ServiceIDs)) {
			return nil, ErrServiceNotFound
		}
		offered := make(map[uint]bool, len(product.AdditionalServices))
		for _, svc := range product.AdditionalServices {
			offered[svc.ID] = true
		}
		for _, svc := range services {
			if !offered[svc.ID] {
				return nil, ErrServiceNotOffered
			}
		}
	}

	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}

	// An identical configuration merges into the existing line
	if existing := findMatchingItem(session.Items, req); existing != nil {
		merged := existing.Quantity + req.Quantity
		if merged > model.MaxCartQuantity {
			return nil, ErrInvalidQuantity
		}
		existing.Quantity = merged
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		return s.GetCart(sessionID)
	}

	item := &model.CartItem{
		CartSessionID: session.ID,
		ProductID:     product.ID,
		VariantID:     req.VariantID,
		SizeID:        req.SizeID,
		Quantity:      req.Quantity,
		PricePerItem:  roundCents(price),
	}
	if err := s.cartRepo.CreateItemWithServices(item, services); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
		"quantity":   req.Quantity,
	})
	return s.GetCart(sessionID)
}

func variantBelongsTo(product *model.Product, variantID uint) bool {
	for _, v := range product.Variants {
		if v.ID == variantID {
			return true
		}
	}
	return false
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func findMatchingItem(items []model.CartItem, req AddItemRequest) *model.CartItem {
	wanted := make(map[uint]bool, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		wanted[id] = true
	}
	for i := range items {
		item := &items[i]
		if item.ProductID != req.ProductID {
			continue
		}
		if !uintPtrEqual(item.VariantID, req.VariantID) || !uintPtrEqual(item.SizeID, req.SizeID) {
			continue
		}
		if len(item.Services) != len(wanted) {
			continue
		}
		match := true
		for _, svc := range item.Services {
			if !wanted[svc.ID] {
				match = false
				break
			}
		}
		if match {
			return item
		}
	}
	return nil
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *cartService) UpdateItemQuantity(sessionID string, itemID uint, quantity int) (*Cart, error) {
	if quantity < model.MinCartQuantity || quantity > model.MaxCartQuantity {
		return nil, ErrInvalidQuantity
	}

	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.FindItem(session.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(sessionID)
}

func (s *cartService) RemoveItem(sessionID string, itemID uint) (*Cart, error) {
	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.FindItem(session.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(sessionID)
}

func (s *cartService) Clear(sessionID string) (*Cart, error) {
	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearSession(session); err != nil {
		return nil, err
	}
	return s.GetCart(sessionID)
}

// ApplyDiscount replaces any previously applied code: carts hold at most one
// discount at a time.
func (s *cartService) ApplyDiscount(sessionID, code string) (*Cart, error) {
	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}

	// Codes are stored uppercase; accept whatever casing the customer typed
	discount, err := s.discountRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	if !discount.Usable(s.now()) {
		return nil, ErrDiscountNotUsable
	}

	var subtotal float64
	for i := range session.Items {
		subtotal += session.Items[i].LineTotal()
	}
	if roundCents(subtotal) < discount.MinOrderValue {
		return nil, ErrDiscountMinValue
	}

	if err := s.cartRepo.SetDiscount(session, &discount.ID); err != nil {
		return nil, err
	}

	logger.Info("Discount applied to cart", map[string]interface{}{
		"session_id": sessionID,
		"code":       discount.Code,
	})
	return s.GetCart(sessionID)
}

func (s *cartService) RemoveDiscount(sessionID string) (*Cart, error) {
	session, err := s.cartRepo.FindOrCreateSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SetDiscount(session, nil); err != nil {
		return nil, err
	}
	return s.GetCart(sessionID)
}

// AdoptSession ties a guest cart to a user after login so the cart survives
// the session switch.
func (s *cartService) AdoptSession(sessionID string, userID uint) error {
	session, err := s.cartRepo.FindSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if session.UserID != nil && *session.UserID != userID {
		// Someone else's cart; leave it alone
		return nil
	}
	return s.cartRepo.AttachUser(session, userID)
}

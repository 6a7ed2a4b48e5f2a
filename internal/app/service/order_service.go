package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidNIP         = errors.New("NIP must be exactly 10 digits")
	ErrMissingAddress     = errors.New("shipping address is incomplete")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

type CheckoutAddress struct {
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

func (a CheckoutAddress) complete() bool {
	return a.FirstName != "" && a.LastName != "" && a.AddressLine1 != "" &&
		a.City != "" && a.PostalCode != ""
}

func (a CheckoutAddress) toOrderAddress() model.OrderAddress {
	country := a.Country
	if country == "" {
		country = "Polska"
	}
	return model.OrderAddress{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Company:      a.Company,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		PostalCode:   a.PostalCode,
		Country:      country,
		Phone:        a.Phone,
	}
}

type CheckoutRequest struct {
	Email           string           `json:"email" binding:"required"`
	Phone           string           `json:"phone"`
	ShippingAddress CheckoutAddress  `json:"shipping_address" binding:"required"`
	BillingAddress  *CheckoutAddress `json:"billing_address"`
	SameAsShipping  bool             `json:"same_as_shipping"`
	PaymentMethod   string           `json:"payment_method"`
	RequiresInvoice bool             `json:"requires_invoice"`
	NIP             string           `json:"nip"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

type OrderService interface {
	Checkout(sessionID string, userID *uint, req CheckoutRequest) (*model.Order, error)
	GetUserOrders(userID uint, page, limit int) ([]model.Order, int64, error)
	GetOrderByID(id uint, userID uint) (*model.Order, error)
	GetOrderByHash(hash string) (*model.Order, error)
	ListOrders(page, limit int, filter repository.OrderFilter) ([]model.Order, int64, error)
	GetOrder(id uint) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	discountRepo repository.DiscountRepository
	now          func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	discountRepo repository.DiscountRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		discountRepo: discountRepo,
		now:          time.Now,
	}
}

// Checkout converts the session's cart into an immutable order. Totals are
// recomputed server-side; the order row and the discount usage bump commit
// in one transaction, then the cart is emptied.
func (s *orderService) Checkout(sessionID string, userID *uint, req CheckoutRequest) (*model.Order, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}
	if !req.ShippingAddress.complete() {
		return nil, ErrMissingAddress
	}

	nip := ""
	if req.RequiresInvoice {
		nip = util.NormalizeNIP(req.NIP)
		if !util.ValidateNIP(nip) {
			return nil, ErrInvalidNIP
		}
	}

	session, err := s.cartRepo.FindSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(session.Items) == 0 {
		return nil, ErrCartEmpty
	}

	now := s.now()
	var subtotal float64
	items := make([]model.OrderItem, 0, len(session.Items))
	for i := range session.Items {
		item := &session.Items[i]
		subtotal += item.LineTotal()
		items = append(items, snapshotItem(item))
	}
	subtotal = roundCents(subtotal)

	var discountCode string
	discount := session.AppliedDiscount
	if discount != nil {
		if !discount.Usable(now) || subtotal < discount.MinOrderValue {
			return nil, ErrDiscountNotUsable
		}
		discountCode = discount.Code
	}
	amount := roundCents(discountAmount(discount, subtotal, now))

	order := &model.Order{
		UserID:          userID,
		Email:           req.Email,
		Phone:           req.Phone,
		Subtotal:        subtotal,
		DiscountAmount:  amount,
		TotalPrice:      roundCents(subtotal - amount),
		DiscountCode:    discountCode,
		Status:          model.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress.toOrderAddress(),
		SameAsShipping:  true,
		RequiresInvoice: req.RequiresInvoice,
		NIP:             nip,
		Items:           items,
	}
	if req.BillingAddress != nil && !req.SameAsShipping {
		order.BillingAddress = req.BillingAddress.toOrderAddress()
		order.SameAsShipping = false
	} else {
		order.BillingAddress = order.ShippingAddress
	}

	// Guests get a public hash so they can look the order up without an
	// account; authenticated orders are reachable through order history.
	if userID == nil {
		hash := uuid.New().String()
		order.PublicHash = &hash
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		if discount != nil {
			if err := s.discountRepo.IncrementUsage(tx, discount.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItems(session.ID); err != nil {
		logger.Error("Failed to empty cart after checkout", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   order.ID,
		})
	}
	if session.AppliedDiscountID != nil {
		if err := s.cartRepo.SetDiscount(session, nil); err != nil {
			logger.Error("Failed to clear cart discount after checkout", err, map[string]interface{}{
				"session_id": sessionID,
			})
		}
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":    order.ID,
		"email":       order.Email,
		"total_price": order.TotalPrice,
		"guest":       userID == nil,
	})
	return order, nil
}

func snapshotItem(item *model.CartItem) model.OrderItem {
	productID := item.ProductID
	snapshot := model.OrderItem{
		ProductID:    &productID,
		ProductName:  item.Product.Name,
		Quantity:     item.Quantity,
		PricePerItem: item.PricePerItem,
		ServicesCost: roundCents(item.ServicesTotal()),
		TotalPrice:   roundCents(item.LineTotal()),
	}
	if item.Variant != nil {
		snapshot.VariantName = item.Variant.Name
		snapshot.ColorName = item.Variant.Color.Name
	}
	if item.Size != nil {
		snapshot.SizeName = item.Size.Name
	}
	if len(item.Services) > 0 {
		names := make([]string, 0, len(item.Services))
		for _, svc := range item.Services {
			names = append(names, svc.Name)
		}
		snapshot.ServicesNote = strings.Join(names, ", ")
	}
	return snapshot
}

func (s *orderService) GetUserOrders(userID uint, page, limit int) ([]model.Order, int64, error) {
	return s.orderRepo.FindByUserID(userID, page, limit)
}

// GetOrderByID returns an order only to its owner
func (s *orderService) GetOrderByID(id uint, userID uint) (*model.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrderByHash(hash string) (*model.Order, error) {
	order, err := s.orderRepo.FindByPublicHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(page, limit int, filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.List(page, limit, filter)
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":   id,
		"old_status": order.Status,
		"new_status": status,
	})
	order.Status = status
	return order, nil
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrDiscountCodeNotFound = errors.New("discount code not found")
	ErrInvalidDiscountType  = errors.New("discount type must be percentage or fixed_amount")
	ErrInvalidDiscountValue = errors.New("discount value is out of range")
)

type DiscountCodeRequest struct {
	Code          string     `json:"code" binding:"required"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type" binding:"required"`
	DiscountValue float64    `json:"discount_value" binding:"required"`
	MinOrderValue float64    `json:"min_order_value"`
	MaxUses       *int       `json:"max_uses"`
	Active        *bool      `json:"active"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type DiscountService interface {
	List(page, limit int, search string) ([]model.DiscountCode, int64, error)
	GetByID(id uint) (*model.DiscountCode, error)
	Create(req DiscountCodeRequest) (*model.DiscountCode, error)
	Update(id uint, req DiscountCodeRequest) (*model.DiscountCode, error)
	Delete(id uint) error
	DeactivateExpired() (int64, error)
}

type discountService struct {
	discountRepo repository.DiscountRepository
	now          func() time.Time
}

func NewDiscountService(discountRepo repository.DiscountRepository) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		now:          time.Now,
	}
}

func (s *discountService) List(page, limit int, search string) ([]model.DiscountCode, int64, error) {
	return s.discountRepo.List(page, limit, search)
}

func (s *discountService) GetByID(id uint) (*model.DiscountCode, error) {
	code, err := s.discountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountCodeNotFound
		}
		return nil, err
	}
	return code, nil
}

func validateDiscount(discountType string, value float64) error {
	switch model.DiscountType(discountType) {
	case model.DiscountPercentage:
		if value <= 0 || value > 100 {
			return ErrInvalidDiscountValue
		}
	case model.DiscountFixedAmount:
		if value <= 0 {
			return ErrInvalidDiscountValue
		}
	default:
		return ErrInvalidDiscountType
	}
	return nil
}

func (s *discountService) Create(req DiscountCodeRequest) (*model.DiscountCode, error) {
	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	code := &model.DiscountCode{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:   req.Description,
		DiscountType:  model.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		MaxUses:       req.MaxUses,
		Active:        true,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
	}
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := s.discountRepo.Create(code); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *discountService) Update(id uint, req DiscountCodeRequest) (*model.DiscountCode, error) {
	code, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	code.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	code.Description = req.Description
	code.DiscountType = model.DiscountType(req.DiscountType)
	code.DiscountValue = req.DiscountValue
	code.MinOrderValue = req.MinOrderValue
	code.MaxUses = req.MaxUses
	code.StartsAt = req.StartsAt
	code.ExpiresAt = req.ExpiresAt
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := s.discountRepo.Update(code); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *discountService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.discountRepo.Delete(id)
}

// DeactivateExpired flips active off for every code past its expiry.
// The scheduler runs this nightly so expired codes stop applying even if
// no cart touches them.
func (s *discountService) DeactivateExpired() (int64, error) {
	count, err := s.discountRepo.DeactivateExpired(s.now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Deactivated expired discount codes", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

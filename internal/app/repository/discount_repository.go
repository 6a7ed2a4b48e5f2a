package repository

import (
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(code *model.DiscountCode) error
	FindByID(id uint) (*model.DiscountCode, error)
	FindByCode(code string) (*model.DiscountCode, error)
	Update(code *model.DiscountCode) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.DiscountCode, int64, error)
	IncrementUsage(tx *gorm.DB, id uint) error
	DeactivateExpired(now time.Time) (int64, error)
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(code *model.DiscountCode) error {
	return r.db.Create(code).Error
}

func (r *discountRepository) FindByID(id uint) (*model.DiscountCode, error) {
	var code model.DiscountCode
	if err := r.db.First(&code, id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *discountRepository) FindByCode(code string) (*model.DiscountCode, error) {
	var discount model.DiscountCode
	if err := r.db.Where("code = ?", code).First(&discount).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Update(code *model.DiscountCode) error {
	return r.db.Save(code).Error
}

func (r *discountRepository) Delete(id uint) error {
	return r.db.Delete(&model.DiscountCode{}, id).Error
}

func (r *discountRepository) List(page, limit int, search string) ([]model.DiscountCode, int64, error) {
	query := r.db.Model(&model.DiscountCode{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("code LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var codes []model.DiscountCode
	err := query.Scopes(Paginate(page, limit)).Order("created_at DESC").Find(&codes).Error
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

// IncrementUsage bumps used_count inside the caller's transaction so
// checkout either records the order and the use together or neither.
func (r *discountRepository) IncrementUsage(tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.DiscountCode{}).
		Where("id = ?", id).
		Update("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *discountRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.DiscountCode{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Update("active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired discount codes", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

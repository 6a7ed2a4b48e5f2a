package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	ReplaceImages(variant *model.ProductVariant, images []model.Image) error
	ClearDefault(productID uint, exceptID uint) error
	Delete(id uint) error
	List(page, limit int, productID *uint) ([]model.ProductVariant, int64, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(variant *model.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.db.Preload("Color").Preload("Images").First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Where("product_id = ?", productID).
		Preload("Color").
		Preload("Images").
		Order("is_default DESC, id ASC").
		Find(&variants).Error
	return variants, err
}

func (r *variantRepository) Update(variant *model.ProductVariant) error {
	return r.db.Save(variant).Error
}

func (r *variantRepository) ReplaceImages(variant *model.ProductVariant, images []model.Image) error {
	return r.db.Model(variant).Association("Images").Replace(images)
}

// ClearDefault unsets is_default on every other variant of the product.
func (r *variantRepository) ClearDefault(productID uint, exceptID uint) error {
	return r.db.Model(&model.ProductVariant{}).
		Where("product_id = ? AND id <> ?", productID, exceptID).
		Update("is_default", false).Error
}

func (r *variantRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProductVariant{}, id).Error
}

func (r *variantRepository) List(page, limit int, productID *uint) ([]model.ProductVariant, int64, error) {
	query := r.db.Model(&model.ProductVariant{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []model.ProductVariant
	err := query.Scopes(Paginate(page, limit)).
		Preload("Color").
		Preload("Images").
		Order("created_at DESC").
		Find(&variants).Error
	if err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

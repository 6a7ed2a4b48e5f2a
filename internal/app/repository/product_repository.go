package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows the product listing
type ProductFilter struct {
	Search     string
	CategoryID *uint
	ActiveOnly bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	ReplaceImages(product *model.Product, images []model.Image) error
	ReplaceServices(product *model.Product, services []model.AdditionalService) error
	Delete(id uint) error
	List(page, limit int, filter ProductFilter) ([]model.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Category").
		Preload("Material").
		Preload("Images").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.is_default DESC, product_variants.id ASC")
		}).
		Preload("Variants.Color").
		Preload("Variants.Images").
		Preload("AdditionalServices").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) ReplaceImages(product *model.Product, images []model.Image) error {
	return r.db.Model(product).Association("Images").Replace(images)
}

func (r *productRepository) ReplaceServices(product *model.Product, services []model.AdditionalService) error {
	return r.db.Model(product).Association("AdditionalServices").Replace(services)
}

func (r *productRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) List(page, limit int, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR short_description LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Scopes(Paginate(page, limit)).
		Preload("Category").
		Preload("Material").
		Preload("Images").
		Preload("Variants").
		Preload("Variants.Color").
		Preload("Variants.Images").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

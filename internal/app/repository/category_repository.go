package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	FindActive() ([]model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.Category, int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Image").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("active = ?", true).
		Preload("Image").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Category{}, id).Error
}

func (r *categoryRepository) List(page, limit int, search string) ([]model.Category, int64, error) {
	query := r.db.Model(&model.Category{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.Category
	err := query.Scopes(Paginate(page, limit)).
		Preload("Image").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

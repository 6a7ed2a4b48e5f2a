package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type SizeRepository interface {
	Create(size *model.Size) error
	FindByID(id uint) (*model.Size, error)
	Update(size *model.Size) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.Size, int64, error)
}

type sizeRepository struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) SizeRepository {
	return &sizeRepository{db: db}
}

func (r *sizeRepository) Create(size *model.Size) error {
	return r.db.Create(size).Error
}

func (r *sizeRepository) FindByID(id uint) (*model.Size, error) {
	var size model.Size
	if err := r.db.First(&size, id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *sizeRepository) Update(size *model.Size) error {
	return r.db.Save(size).Error
}

func (r *sizeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Size{}, id).Error
}

func (r *sizeRepository) List(page, limit int, search string) ([]model.Size, int64, error) {
	query := r.db.Model(&model.Size{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sizes []model.Size
	err := query.Scopes(Paginate(page, limit)).Order("price_modifier ASC, name ASC").Find(&sizes).Error
	if err != nil {
		return nil, 0, err
	}
	return sizes, total, nil
}

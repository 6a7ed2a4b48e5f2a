package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type ColorRepository interface {
	Create(color *model.Color) error
	FindByID(id uint) (*model.Color, error)
	Update(color *model.Color) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.Color, int64, error)
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	return r.db.Create(color).Error
}

func (r *colorRepository) FindByID(id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) Update(color *model.Color) error {
	return r.db.Save(color).Error
}

func (r *colorRepository) Delete(id uint) error {
	return r.db.Delete(&model.Color{}, id).Error
}

func (r *colorRepository) List(page, limit int, search string) ([]model.Color, int64, error) {
	query := r.db.Model(&model.Color{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var colors []model.Color
	err := query.Scopes(Paginate(page, limit)).Order("name ASC").Find(&colors).Error
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

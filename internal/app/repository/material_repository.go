package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.Material) error
	FindByID(id uint) (*model.Material, error)
	Update(material *model.Material) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.Material, int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(material *model.Material) error {
	return r.db.Create(material).Error
}

func (r *materialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	if err := r.db.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) Update(material *model.Material) error {
	return r.db.Save(material).Error
}

func (r *materialRepository) Delete(id uint) error {
	return r.db.Delete(&model.Material{}, id).Error
}

func (r *materialRepository) List(page, limit int, search string) ([]model.Material, int64, error) {
	query := r.db.Model(&model.Material{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []model.Material
	err := query.Scopes(Paginate(page, limit)).Order("name ASC").Find(&materials).Error
	if err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

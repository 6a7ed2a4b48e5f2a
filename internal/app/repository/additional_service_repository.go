package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type AdditionalServiceRepository interface {
	Create(service *model.AdditionalService) error
	FindByID(id uint) (*model.AdditionalService, error)
	FindByIDs(ids []uint) ([]model.AdditionalService, error)
	Update(service *model.AdditionalService) error
	Delete(id uint) error
	List(page, limit int, search string) ([]model.AdditionalService, int64, error)
}

type additionalServiceRepository struct {
	db *gorm.DB
}

func NewAdditionalServiceRepository(db *gorm.DB) AdditionalServiceRepository {
	return &additionalServiceRepository{db: db}
}

func (r *additionalServiceRepository) Create(service *model.AdditionalService) error {
	return r.db.Create(service).Error
}

func (r *additionalServiceRepository) FindByID(id uint) (*model.AdditionalService, error) {
	var service model.AdditionalService
	if err := r.db.First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *additionalServiceRepository) FindByIDs(ids []uint) ([]model.AdditionalService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []model.AdditionalService
	if err := r.db.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *additionalServiceRepository) Update(service *model.AdditionalService) error {
	return r.db.Save(service).Error
}

func (r *additionalServiceRepository) Delete(id uint) error {
	return r.db.Delete(&model.AdditionalService{}, id).Error
}

func (r *additionalServiceRepository) List(page, limit int, search string) ([]model.AdditionalService, int64, error) {
	query := r.db.Model(&model.AdditionalService{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var services []model.AdditionalService
	err := query.Scopes(Paginate(page, limit)).Order("name ASC").Find(&services).Error
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

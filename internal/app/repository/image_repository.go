package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(image *model.Image) error
	FindByID(id uint) (*model.Image, error)
	FindByIDs(ids []uint) ([]model.Image, error)
	Delete(id uint) error
	List(page, limit int, search string) ([]model.Image, int64, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *imageRepository) FindByID(id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindByIDs(ids []uint) ([]model.Image, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var images []model.Image
	if err := r.db.Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) Delete(id uint) error {
	return r.db.Delete(&model.Image{}, id).Error
}

func (r *imageRepository) List(page, limit int, search string) ([]model.Image, int64, error) {
	query := r.db.Model(&model.Image{})
	if search != "" {
		query = query.Where("original_name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []model.Image
	err := query.Scopes(Paginate(page, limit)).Order("created_at DESC").Find(&images).Error
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

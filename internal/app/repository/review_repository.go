package repository

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/gorm"
)

// ReviewFilter narrows the review listing
type ReviewFilter struct {
	ApprovedOnly bool
	FeaturedOnly bool
	Search       string
}

type ReviewRepository interface {
	Create(review *model.ClientReview) error
	FindByID(id uint) (*model.ClientReview, error)
	Update(review *model.ClientReview) error
	Delete(id uint) error
	List(page, limit int, filter ReviewFilter) ([]model.ClientReview, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.ClientReview) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.ClientReview, error) {
	var review model.ClientReview
	if err := r.db.Preload("Image").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *model.ClientReview) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.ClientReview{}, id).Error
}

func (r *reviewRepository) List(page, limit int, filter ReviewFilter) ([]model.ClientReview, int64, error) {
	query := r.db.Model(&model.ClientReview{})

	if filter.ApprovedOnly {
		query = query.Where("approved = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("client_name LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.ClientReview
	err := query.Scopes(Paginate(page, limit)).
		Preload("Image").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

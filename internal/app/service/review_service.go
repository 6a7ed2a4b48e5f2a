package service

import (
	"errors"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("client review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	Email      string `json:"email"`
	Rating     int    `json:"rating" binding:"required"`
	Content    string `json:"content" binding:"required"`
	ImageID    *uint  `json:"image_id"`
}

type ModerateReviewRequest struct {
	ClientName *string `json:"client_name"`
	Email      *string `json:"email"`
	Rating     *int    `json:"rating"`
	Content    *string `json:"content"`
	Approved   *bool   `json:"approved"`
	Featured   *bool   `json:"featured"`
	ImageID    *uint   `json:"image_id"`
}

// ReviewService handles storefront testimonials. Submissions arrive
// unapproved and only show publicly after moderation.
type ReviewService interface {
	PublicList(page, limit int, featuredOnly bool) ([]model.ClientReview, int64, error)
	Submit(req ReviewRequest) (*model.ClientReview, error)

	List(page, limit int, search string) ([]model.ClientReview, int64, error)
	GetByID(id uint) (*model.ClientReview, error)
	Create(req ReviewRequest) (*model.ClientReview, error)
	Update(id uint, req ModerateReviewRequest) (*model.ClientReview, error)
	Delete(id uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) PublicList(page, limit int, featuredOnly bool) ([]model.ClientReview, int64, error) {
	return s.reviewRepo.List(page, limit, repository.ReviewFilter{
		ApprovedOnly: true,
		FeaturedOnly: featuredOnly,
	})
}

func (s *reviewService) Submit(req ReviewRequest) (*model.ClientReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &model.ClientReview{
		ClientName: req.ClientName,
		Email:      req.Email,
		Rating:     req.Rating,
		Content:    req.Content,
		ImageID:    req.ImageID,
		Approved:   false,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) List(page, limit int, search string) ([]model.ClientReview, int64, error) {
	return s.reviewRepo.List(page, limit, repository.ReviewFilter{Search: search})
}

func (s *reviewService) GetByID(id uint) (*model.ClientReview, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create is the admin path: reviews added from the back office are
// approved immediately.
func (s *reviewService) Create(req ReviewRequest) (*model.ClientReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &model.ClientReview{
		ClientName: req.ClientName,
		Email:      req.Email,
		Rating:     req.Rating,
		Content:    req.Content,
		ImageID:    req.ImageID,
		Approved:   true,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(id uint, req ModerateReviewRequest) (*model.ClientReview, error) {
	review, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		review.ClientName = *req.ClientName
	}
	if req.Email != nil {
		review.Email = *req.Email
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}
	if req.Content != nil {
		review.Content = *req.Content
	}
	if req.Approved != nil {
		review.Approved = *req.Approved
	}
	if req.Featured != nil {
		review.Featured = *req.Featured
	}
	if req.ImageID != nil {
		review.ImageID = req.ImageID
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(id)
}

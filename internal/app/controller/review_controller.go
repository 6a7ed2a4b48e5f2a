package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

// ReviewController serves the public testimonial endpoints
type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// List returns approved reviews
// GET /api/reviews
func (ctrl *ReviewController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	featuredOnly := parseBoolQuery(c, "featured")

	reviews, total, err := ctrl.reviewService.PublicList(page, limit, featuredOnly)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("reviews", reviews, total, page, limit))
}

// Submit accepts a new review for moderation
// POST /api/reviews
func (ctrl *ReviewController) Submit(c *gin.Context) {
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.Submit(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to submit review", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you! Your review is awaiting moderation",
		"review":  review,
	})
}

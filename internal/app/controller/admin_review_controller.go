package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type AdminReviewController struct {
	reviewService service.ReviewService
}

func NewAdminReviewController(reviewService service.ReviewService) *AdminReviewController {
	return &AdminReviewController{reviewService: reviewService}
}

func (ctrl *AdminReviewController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, "Client review not found")
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
	default:
		middleware.GetLoggerFromContext(c).Error("Review operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

// GET /api/admin/client-reviews
func (ctrl *AdminReviewController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	reviews, total, err := ctrl.reviewService.List(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("client_reviews", reviews, total, page, limit))
}

// GET /api/admin/client-reviews/:id
func (ctrl *AdminReviewController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	review, err := ctrl.reviewService.GetByID(id)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_review": review})
}

// POST /api/admin/client-reviews
func (ctrl *AdminReviewController) Create(c *gin.Context) {
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.Create(req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client_review": review})
}

// PUT /api/admin/client-reviews/:id
func (ctrl *AdminReviewController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}
	var req service.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.Update(id, req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_review": review})
}

// DELETE /api/admin/client-reviews/:id
func (ctrl *AdminReviewController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}
	if err := ctrl.reviewService.Delete(id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client review deleted"})
}

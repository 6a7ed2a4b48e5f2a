package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type AdminDiscountController struct {
	discountService service.DiscountService
}

func NewAdminDiscountController(discountService service.DiscountService) *AdminDiscountController {
	return &AdminDiscountController{discountService: discountService}
}

func (ctrl *AdminDiscountController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDiscountCodeNotFound):
		apperrors.NotFound(c, apperrors.DiscountNotFound, "Discount code not found")
	case errors.Is(err, service.ErrInvalidDiscountType):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Discount type must be percentage or fixed_amount")
	case errors.Is(err, service.ErrInvalidDiscountValue):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Discount value is out of range")
	default:
		middleware.GetLoggerFromContext(c).Error("Discount operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "discount code")
	}
}

// GET /api/admin/discount-codes
func (ctrl *AdminDiscountController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	codes, total, err := ctrl.discountService.List(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("discount_codes", codes, total, page, limit))
}

// GET /api/admin/discount-codes/:id
func (ctrl *AdminDiscountController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid discount code ID")
		return
	}

	code, err := ctrl.discountService.GetByID(id)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount_code": code})
}

// POST /api/admin/discount-codes
func (ctrl *AdminDiscountController) Create(c *gin.Context) {
	var req service.DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid discount code data")
		return
	}

	code, err := ctrl.discountService.Create(req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount_code": code})
}

// PUT /api/admin/discount-codes/:id
func (ctrl *AdminDiscountController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid discount code ID")
		return
	}
	var req service.DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid discount code data")
		return
	}

	code, err := ctrl.discountService.Update(id, req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount_code": code})
}

// DELETE /api/admin/discount-codes/:id
func (ctrl *AdminDiscountController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid discount code ID")
		return
	}
	if err := ctrl.discountService.Delete(id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount code deleted"})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// Get returns the cart snapshot for the current session
// GET /api/cart
func (ctrl *CartController) Get(c *gin.Context) {
	cart, err := ctrl.cartService.GetCart(middleware.GetSessionID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load cart", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a configured product line to the cart
// POST /api/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	cart, err := ctrl.cartService.AddItem(middleware.GetSessionID(c), req)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// UpdateItem changes a line's quantity
// PUT /api/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity is required")
		return
	}

	cart, err := ctrl.cartService.UpdateItemQuantity(middleware.GetSessionID(c), itemID, req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes a line from the cart
// DELETE /api/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	cart, err := ctrl.cartService.RemoveItem(middleware.GetSessionID(c), itemID)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear empties the cart
// DELETE /api/cart
func (ctrl *CartController) Clear(c *gin.Context) {
	cart, err := ctrl.cartService.Clear(middleware.GetSessionID(c))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ApplyDiscount applies a discount code, replacing any current one
// POST /api/cart/discount
func (ctrl *CartController) ApplyDiscount(c *gin.Context) {
	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Discount code is required")
		return
	}

	cart, err := ctrl.cartService.ApplyDiscount(middleware.GetSessionID(c), req.Code)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveDiscount clears the applied discount code
// DELETE /api/cart/discount
func (ctrl *CartController) RemoveDiscount(c *gin.Context) {
	cart, err := ctrl.cartService.RemoveDiscount(middleware.GetSessionID(c))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must be between 1 and 99")
	case errors.Is(err, service.ErrInvalidVariant):
		apperrors.BadRequest(c, apperrors.CartInvalidVariant, "Selected variant does not belong to this product")
	case errors.Is(err, service.ErrSizeNotFound), errors.Is(err, service.ErrSizeUnavailable):
		apperrors.BadRequest(c, apperrors.CartInvalidSize, "Selected size is not available")
	case errors.Is(err, service.ErrServiceNotFound), errors.Is(err, service.ErrServiceNotOffered):
		apperrors.BadRequest(c, apperrors.CartInvalidService, "Selected service is not offered for this product")
	case errors.Is(err, service.ErrDiscountNotFound):
		apperrors.NotFound(c, apperrors.DiscountNotFound, "Discount code not found")
	case errors.Is(err, service.ErrDiscountNotUsable):
		apperrors.BadRequest(c, apperrors.DiscountInactive, "This discount code cannot be used")
	case errors.Is(err, service.ErrDiscountMinValue):
		apperrors.BadRequest(c, apperrors.DiscountMinOrderValue, "Cart value is below the code's minimum")
	default:
		middleware.GetLoggerFromContext(c).Error("Cart operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

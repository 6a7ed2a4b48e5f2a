package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout converts the session's cart into an order. Works for guests and
// authenticated users alike; guests get a public hash in the response.
// POST /api/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	userID := middleware.GetOptionalUserID(c)
	order, err := ctrl.orderService.Checkout(middleware.GetSessionID(c), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidEmail, "Please provide a valid email address")
		case errors.Is(err, service.ErrMissingAddress):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Shipping address is incomplete")
		case errors.Is(err, service.ErrInvalidNIP):
			apperrors.BadRequest(c, apperrors.ValidationInvalidNIP, "NIP must be exactly 10 digits")
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrDiscountNotUsable):
			apperrors.BadRequest(c, apperrors.DiscountInactive, "The applied discount code is no longer valid")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":        order,
		"status_label": model.StatusLabelsPL[order.Status],
	})
}

// History returns the authenticated user's orders
// GET /api/orders
func (ctrl *OrderController) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	page, limit := parsePagination(c)
	orders, total, err := ctrl.orderService.GetUserOrders(userID, page, limit)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("orders", orders, total, page, limit))
}

// Get returns one of the authenticated user's orders
// GET /api/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(orderID, userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"status_label": model.StatusLabelsPL[order.Status],
	})
}

// GetByHash returns a guest order by its public hash. No authentication;
// the hash is the credential.
// GET /api/orders/hash/:hash
func (ctrl *OrderController) GetByHash(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order hash")
		return
	}

	order, err := ctrl.orderService.GetOrderByHash(hash)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"status_label": model.StatusLabelsPL[order.Status],
	})
}

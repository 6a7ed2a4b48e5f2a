package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type AdminOrderController struct {
	orderService service.OrderService
}

func NewAdminOrderController(orderService service.OrderService) *AdminOrderController {
	return &AdminOrderController{orderService: orderService}
}

// List returns all orders with status filter and customer search
// GET /api/admin/orders
func (ctrl *AdminOrderController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.OrderFilter{
		Status: model.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if filter.Status != "" && !model.ValidOrderStatus(filter.Status) {
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status filter")
		return
	}

	orders, total, err := ctrl.orderService.ListOrders(page, limit, filter)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("orders", orders, total, page, limit))
}

// Get returns any order by ID, regardless of owner
// GET /api/admin/orders/:id
func (ctrl *AdminOrderController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
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
		"status_label": model.StatusLabelsEN[order.Status],
	})
}

// UpdateStatus changes an order's status. Any of the five statuses may be
// set; there is no enforced transition graph.
// PATCH /api/admin/orders/:id/status
func (ctrl *AdminOrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status is required")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
		default:
			middleware.GetLoggerFromContext(c).Error("Order status update failed", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"status_label": model.StatusLabelsEN[order.Status],
	})
}

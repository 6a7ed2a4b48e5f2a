package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type AdminUserController struct {
	userService service.UserService
}

func NewAdminUserController(userService service.UserService) *AdminUserController {
	return &AdminUserController{userService: userService}
}

func (ctrl *AdminUserController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
	case errors.Is(err, service.ErrEmailTaken):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email address is already registered")
	case errors.Is(err, service.ErrInvalidEmail):
		apperrors.BadRequest(c, apperrors.ValidationInvalidEmail, "Please provide a valid email address")
	case errors.Is(err, service.ErrWeakPassword):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Password must be at least 8 characters")
	case errors.Is(err, service.ErrInvalidRole):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Role must be client or admin")
	default:
		middleware.GetLoggerFromContext(c).Error("User operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "user")
	}
}

// GET /api/admin/users
func (ctrl *AdminUserController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := ctrl.userService.List(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("users", users, total, page, limit))
}

// GET /api/admin/users/:id
func (ctrl *AdminUserController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	user, err := ctrl.userService.GetByID(id)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/admin/users
func (ctrl *AdminUserController) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid user data")
		return
	}

	user, err := ctrl.userService.Create(req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// PUT /api/admin/users/:id
func (ctrl *AdminUserController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid user data")
		return
	}

	user, err := ctrl.userService.Update(id, req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/admin/users/:id
func (ctrl *AdminUserController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	// Admins cannot delete their own account from the list
	if selfID, ok := middleware.GetUserID(c); ok && selfID == id {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "You cannot delete your own account")
		return
	}

	if err := ctrl.userService.Delete(id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

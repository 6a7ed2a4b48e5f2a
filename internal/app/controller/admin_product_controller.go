package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

// AdminProductController manages products and their variants from the back
// office. Inactive products are visible here, unlike the storefront.
type AdminProductController struct {
	productService service.ProductService
}

func NewAdminProductController(productService service.ProductService) *AdminProductController {
	return &AdminProductController{productService: productService}
}

func (ctrl *AdminProductController) respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Product variant not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Selected category does not exist")
	default:
		middleware.GetLoggerFromContext(c).Error("Product operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
	}
}

// GET /api/admin/products
func (ctrl *AdminProductController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	products, total, err := ctrl.productService.ListProducts(page, limit, c.Query("search"), parseUintQuery(c, "category_id"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("products", products, total, page, limit))
}

// GET /api/admin/products/:id
func (ctrl *AdminProductController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// POST /api/admin/products
func (ctrl *AdminProductController) Create(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(req)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// PUT /api/admin/products/:id
func (ctrl *AdminProductController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DELETE /api/admin/products/:id
func (ctrl *AdminProductController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}
	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ==================== Variants ====================

// GET /api/admin/product-variants
func (ctrl *AdminProductController) ListVariants(c *gin.Context) {
	page, limit := parsePagination(c)
	variants, total, err := ctrl.productService.ListVariants(page, limit, parseUintQuery(c, "product_id"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("product_variants", variants, total, page, limit))
}

// GET /api/admin/product-variants/:id
func (ctrl *AdminProductController) GetVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	variant, err := ctrl.productService.GetVariant(id)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_variant": variant})
}

// POST /api/admin/product-variants
func (ctrl *AdminProductController) CreateVariant(c *gin.Context) {
	var req service.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant, err := ctrl.productService.CreateVariant(req)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_variant": variant})
}

// PUT /api/admin/product-variants/:id
func (ctrl *AdminProductController) UpdateVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}
	var req service.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant, err := ctrl.productService.UpdateVariant(id, req)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_variant": variant})
}

// DELETE /api/admin/product-variants/:id
func (ctrl *AdminProductController) DeleteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}
	if err := ctrl.productService.DeleteVariant(id); err != nil {
		ctrl.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product variant deleted"})
}

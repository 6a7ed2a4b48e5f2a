package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
)

// ProductController serves the public storefront catalog
type ProductController struct {
	productService service.ProductService
	catalogService service.CatalogService
}

func NewProductController(productService service.ProductService, catalogService service.CatalogService) *ProductController {
	return &ProductController{
		productService: productService,
		catalogService: catalogService,
	}
}

// List returns active products with pagination, search and category filter
// GET /api/products
func (ctrl *ProductController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	search := c.Query("search")
	categoryID := parseUintQuery(c, "category_id")

	products, total, err := ctrl.productService.BrowseProducts(page, limit, search, categoryID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("products", products, total, page, limit))
}

// Get returns a single active product with variants, images and services
// GET /api/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetPublicProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Categories returns the active categories for storefront navigation
// GET /api/categories
func (ctrl *ProductController) Categories(c *gin.Context) {
	categories, err := ctrl.catalogService.ActiveCategories()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Sizes returns available sizes for the product page selector
// GET /api/sizes
func (ctrl *ProductController) Sizes(c *gin.Context) {
	sizes, _, err := ctrl.catalogService.ListSizes(1, 100, "")
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

// parseBoolQuery reads an optional boolean query parameter
func parseBoolQuery(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

// AdminCatalogController manages the lookup entities from the back office:
// categories, materials, colors, sizes and additional services.
type AdminCatalogController struct {
	catalogService service.CatalogService
}

func NewAdminCatalogController(catalogService service.CatalogService) *AdminCatalogController {
	return &AdminCatalogController{catalogService: catalogService}
}

func respondCatalogError(c *gin.Context, err error, noun string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrColorNotFound),
		errors.Is(err, service.ErrSizeNotFound),
		errors.Is(err, service.ErrServiceNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "The requested "+noun+" was not found")
	default:
		middleware.GetLoggerFromContext(c).Error("Catalog operation failed", err, map[string]interface{}{
			"entity": noun,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, noun)
	}
}

// ==================== Categories ====================

// GET /api/admin/categories
func (ctrl *AdminCatalogController) ListCategories(c *gin.Context) {
	page, limit := parsePagination(c)
	categories, total, err := ctrl.catalogService.ListCategories(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("categories", categories, total, page, limit))
}

// POST /api/admin/categories
func (ctrl *AdminCatalogController) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.CreateCategory(req)
	if err != nil {
		respondCatalogError(c, err, "category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// PUT /api/admin/categories/:id
func (ctrl *AdminCatalogController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.UpdateCategory(id, req)
	if err != nil {
		respondCatalogError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DELETE /api/admin/categories/:id
func (ctrl *AdminCatalogController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}
	if err := ctrl.catalogService.DeleteCategory(id); err != nil {
		respondCatalogError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ==================== Materials ====================

// GET /api/admin/materials
func (ctrl *AdminCatalogController) ListMaterials(c *gin.Context) {
	page, limit := parsePagination(c)
	materials, total, err := ctrl.catalogService.ListMaterials(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("materials", materials, total, page, limit))
}

// POST /api/admin/materials
func (ctrl *AdminCatalogController) CreateMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid material data")
		return
	}

	material, err := ctrl.catalogService.CreateMaterial(req)
	if err != nil {
		respondCatalogError(c, err, "material")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"material": material})
}

// PUT /api/admin/materials/:id
func (ctrl *AdminCatalogController) UpdateMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid material ID")
		return
	}
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid material data")
		return
	}

	material, err := ctrl.catalogService.UpdateMaterial(id, req)
	if err != nil {
		respondCatalogError(c, err, "material")
		return
	}
	c.JSON(http.StatusOK, gin.H{"material": material})
}

// DELETE /api/admin/materials/:id
func (ctrl *AdminCatalogController) DeleteMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid material ID")
		return
	}
	if err := ctrl.catalogService.DeleteMaterial(id); err != nil {
		respondCatalogError(c, err, "material")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}

// ==================== Colors ====================

// GET /api/admin/colors
func (ctrl *AdminCatalogController) ListColors(c *gin.Context) {
	page, limit := parsePagination(c)
	colors, total, err := ctrl.catalogService.ListColors(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("colors", colors, total, page, limit))
}

// POST /api/admin/colors
func (ctrl *AdminCatalogController) CreateColor(c *gin.Context) {
	var req service.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid color data")
		return
	}

	color, err := ctrl.catalogService.CreateColor(req)
	if err != nil {
		respondCatalogError(c, err, "color")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"color": color})
}

// PUT /api/admin/colors/:id
func (ctrl *AdminCatalogController) UpdateColor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid color ID")
		return
	}
	var req service.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid color data")
		return
	}

	color, err := ctrl.catalogService.UpdateColor(id, req)
	if err != nil {
		respondCatalogError(c, err, "color")
		return
	}
	c.JSON(http.StatusOK, gin.H{"color": color})
}

// DELETE /api/admin/colors/:id
func (ctrl *AdminCatalogController) DeleteColor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid color ID")
		return
	}
	if err := ctrl.catalogService.DeleteColor(id); err != nil {
		respondCatalogError(c, err, "color")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Color deleted"})
}

// ==================== Sizes ====================

// GET /api/admin/sizes
func (ctrl *AdminCatalogController) ListSizes(c *gin.Context) {
	page, limit := parsePagination(c)
	sizes, total, err := ctrl.catalogService.ListSizes(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("sizes", sizes, total, page, limit))
}

// POST /api/admin/sizes
func (ctrl *AdminCatalogController) CreateSize(c *gin.Context) {
	var req service.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid size data")
		return
	}

	size, err := ctrl.catalogService.CreateSize(req)
	if err != nil {
		respondCatalogError(c, err, "size")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"size": size})
}

// PUT /api/admin/sizes/:id
func (ctrl *AdminCatalogController) UpdateSize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid size ID")
		return
	}
	var req service.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid size data")
		return
	}

	size, err := ctrl.catalogService.UpdateSize(id, req)
	if err != nil {
		respondCatalogError(c, err, "size")
		return
	}
	c.JSON(http.StatusOK, gin.H{"size": size})
}

// DELETE /api/admin/sizes/:id
func (ctrl *AdminCatalogController) DeleteSize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid size ID")
		return
	}
	if err := ctrl.catalogService.DeleteSize(id); err != nil {
		respondCatalogError(c, err, "size")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Size deleted"})
}

// ==================== Additional services ====================

// GET /api/admin/additional-services
func (ctrl *AdminCatalogController) ListAdditionalServices(c *gin.Context) {
	page, limit := parsePagination(c)
	services, total, err := ctrl.catalogService.ListAdditionalServices(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("additional_services", services, total, page, limit))
}

// POST /api/admin/additional-services
func (ctrl *AdminCatalogController) CreateAdditionalService(c *gin.Context) {
	var req service.AdditionalServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid service data")
		return
	}

	svc, err := ctrl.catalogService.CreateAdditionalService(req)
	if err != nil {
		respondCatalogError(c, err, "additional service")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"additional_service": svc})
}

// PUT /api/admin/additional-services/:id
func (ctrl *AdminCatalogController) UpdateAdditionalService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid service ID")
		return
	}
	var req service.AdditionalServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid service data")
		return
	}

	svc, err := ctrl.catalogService.UpdateAdditionalService(id, req)
	if err != nil {
		respondCatalogError(c, err, "additional service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"additional_service": svc})
}

// DELETE /api/admin/additional-services/:id
func (ctrl *AdminCatalogController) DeleteAdditionalService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid service ID")
		return
	}
	if err := ctrl.catalogService.DeleteAdditionalService(id); err != nil {
		respondCatalogError(c, err, "additional service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Additional service deleted"})
}

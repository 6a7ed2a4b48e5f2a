package service

import (
	"errors"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

type ProductRequest struct {
	Name               string  `json:"name" binding:"required"`
	ShortDescription   string  `json:"short_description"`
	Description        string  `json:"description"`
	Price              float64 `json:"price" binding:"required"`
	CategoryID         uint    `json:"category_id" binding:"required"`
	MaterialID         *uint   `json:"material_id"`
	Active             *bool   `json:"active"`
	Featured           *bool   `json:"featured"`
	ImageIDs           []uint  `json:"image_ids"`
	AdditionalServices []uint  `json:"additional_service_ids"`
}

type VariantRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	ColorID   uint   `json:"color_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	IsDefault *bool  `json:"is_default"`
	ImageIDs  []uint `json:"image_ids"`
}

// ProductService serves both the public catalog (active products only) and
// the admin back office (everything, plus writes).
type ProductService interface {
	BrowseProducts(page, limit int, search string, categoryID *uint) ([]model.Product, int64, error)
	GetPublicProduct(id uint) (*model.Product, error)

	ListProducts(page, limit int, search string, categoryID *uint) ([]model.Product, int64, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(req ProductRequest) (*model.Product, error)
	UpdateProduct(id uint, req ProductRequest) (*model.Product, error)
	DeleteProduct(id uint) error

	ListVariants(page, limit int, productID *uint) ([]model.ProductVariant, int64, error)
	GetVariant(id uint) (*model.ProductVariant, error)
	CreateVariant(req VariantRequest) (*model.ProductVariant, error)
	UpdateVariant(id uint, req VariantRequest) (*model.ProductVariant, error)
	DeleteVariant(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	categoryRepo repository.CategoryRepository
	imageRepo    repository.ImageRepository
	serviceRepo  repository.AdditionalServiceRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
	imageRepo repository.ImageRepository,
	serviceRepo repository.AdditionalServiceRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		serviceRepo:  serviceRepo,
	}
}

// BrowseProducts is the storefront listing: only active products are shown
func (s *productService) BrowseProducts(page, limit int, search string, categoryID *uint) ([]model.Product, int64, error) {
	return s.productRepo.List(page, limit, repository.ProductFilter{
		Search:     search,
		CategoryID: categoryID,
		ActiveOnly: true,
	})
}

func (s *productService) GetPublicProduct(id uint) (*model.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) ListProducts(page, limit int, search string, categoryID *uint) ([]model.Product, int64, error) {
	return s.productRepo.List(page, limit, repository.ProductFilter{
		Search:     search,
		CategoryID: categoryID,
	})
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(req ProductRequest) (*model.Product, error) {
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Price:            req.Price,
		CategoryID:       req.CategoryID,
		MaterialID:       req.MaterialID,
		Active:           true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if err := s.assignAssociations(product, req.ImageIDs, req.AdditionalServices); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return s.GetProduct(product.ID)
}

func (s *productService) UpdateProduct(id uint, req ProductRequest) (*model.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product.Name = req.Name
	product.ShortDescription = req.ShortDescription
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.MaterialID = req.MaterialID
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	// Avoid gorm re-saving stale associations along with the row
	product.Category = model.Category{}
	product.Material = nil
	product.Images = nil
	product.Variants = nil
	product.AdditionalServices = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.assignAssociations(product, req.ImageIDs, req.AdditionalServices); err != nil {
		return nil, err
	}
	return s.GetProduct(product.ID)
}

func (s *productService) assignAssociations(product *model.Product, imageIDs, serviceIDs []uint) error {
	if imageIDs != nil {
		images, err := s.imageRepo.FindByIDs(imageIDs)
		if err != nil {
			return err
		}
		if err := s.productRepo.ReplaceImages(product, images); err != nil {
			return err
		}
	}
	if serviceIDs != nil {
		services, err := s.serviceRepo.FindByIDs(serviceIDs)
		if err != nil {
			return err
		}
		if err := s.productRepo.ReplaceServices(product, services); err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

// ==================== Variants ====================

func (s *productService) ListVariants(page, limit int, productID *uint) ([]model.ProductVariant, int64, error) {
	return s.variantRepo.List(page, limit, productID)
}

func (s *productService) GetVariant(id uint) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

func (s *productService) CreateVariant(req VariantRequest) (*model.ProductVariant, error) {
	if _, err := s.GetProduct(req.ProductID); err != nil {
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID: req.ProductID,
		ColorID:   req.ColorID,
		Name:      req.Name,
	}
	if req.IsDefault != nil {
		variant.IsDefault = *req.IsDefault
	}

	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	if variant.IsDefault {
		if err := s.variantRepo.ClearDefault(variant.ProductID, variant.ID); err != nil {
			return nil, err
		}
	}
	if req.ImageIDs != nil {
		images, err := s.imageRepo.FindByIDs(req.ImageIDs)
		if err != nil {
			return nil, err
		}
		if err := s.variantRepo.ReplaceImages(variant, images); err != nil {
			return nil, err
		}
	}
	return s.GetVariant(variant.ID)
}

func (s *productService) UpdateVariant(id uint, req VariantRequest) (*model.ProductVariant, error) {
	variant, err := s.GetVariant(id)
	if err != nil {
		return nil, err
	}

	variant.ColorID = req.ColorID
	variant.Name = req.Name
	if req.IsDefault != nil {
		variant.IsDefault = *req.IsDefault
	}
	variant.Color = model.Color{}
	variant.Images = nil

	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	if variant.IsDefault {
		if err := s.variantRepo.ClearDefault(variant.ProductID, variant.ID); err != nil {
			return nil, err
		}
	}
	if req.ImageIDs != nil {
		images, err := s.imageRepo.FindByIDs(req.ImageIDs)
		if err != nil {
			return nil, err
		}
		if err := s.variantRepo.ReplaceImages(variant, images); err != nil {
			return nil, err
		}
	}
	return s.GetVariant(variant.ID)
}

func (s *productService) DeleteVariant(id uint) error {
	if _, err := s.GetVariant(id); err != nil {
		return err
	}
	return s.variantRepo.Delete(id)
}

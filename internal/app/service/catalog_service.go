package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrColorNotFound    = errors.New("color not found")
	ErrSizeNotFound     = errors.New("size not found")
	ErrServiceNotFound  = errors.New("additional service not found")
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL slug from a category name. Polish diacritics are
// transliterated so "Bluzy i swetry" and "Czapki zimowe" both produce
// clean paths.
func Slugify(name string) string {
	replacer := strings.NewReplacer(
		"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
		"ó", "o", "ś", "s", "ż", "z", "ź", "z",
		"Ą", "a", "Ć", "c", "Ę", "e", "Ł", "l", "Ń", "n",
		"Ó", "o", "Ś", "s", "Ż", "z", "Ź", "z",
	)
	slug := strings.ToLower(replacer.Replace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageID     *uint  `json:"image_id"`
	Active      *bool  `json:"active"`
}

type MaterialRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ColorRequest struct {
	Name   string `json:"name" binding:"required"`
	Custom *bool  `json:"custom"`
}

type SizeRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PriceModifier *float64 `json:"price_modifier"`
	Available     *bool    `json:"available"`
}

type AdditionalServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// CatalogService manages the lookup entities behind products: categories,
// materials, colors, sizes and additional services.
type CatalogService interface {
	ListCategories(page, limit int, search string) ([]model.Category, int64, error)
	ActiveCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(req CategoryRequest) (*model.Category, error)
	UpdateCategory(id uint, req CategoryRequest) (*model.Category, error)
	DeleteCategory(id uint) error

	ListMaterials(page, limit int, search string) ([]model.Material, int64, error)
	CreateMaterial(req MaterialRequest) (*model.Material, error)
	UpdateMaterial(id uint, req MaterialRequest) (*model.Material, error)
	DeleteMaterial(id uint) error

	ListColors(page, limit int, search string) ([]model.Color, int64, error)
	CreateColor(req ColorRequest) (*model.Color, error)
	UpdateColor(id uint, req ColorRequest) (*model.Color, error)
	DeleteColor(id uint) error

	ListSizes(page, limit int, search string) ([]model.Size, int64, error)
	CreateSize(req SizeRequest) (*model.Size, error)
	UpdateSize(id uint, req SizeRequest) (*model.Size, error)
	DeleteSize(id uint) error

	ListAdditionalServices(page, limit int, search string) ([]model.AdditionalService, int64, error)
	CreateAdditionalService(req AdditionalServiceRequest) (*model.AdditionalService, error)
	UpdateAdditionalService(id uint, req AdditionalServiceRequest) (*model.AdditionalService, error)
	DeleteAdditionalService(id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	materialRepo repository.MaterialRepository
	colorRepo    repository.ColorRepository
	sizeRepo     repository.SizeRepository
	serviceRepo  repository.AdditionalServiceRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	materialRepo repository.MaterialRepository,
	colorRepo repository.ColorRepository,
	sizeRepo repository.SizeRepository,
	serviceRepo repository.AdditionalServiceRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		materialRepo: materialRepo,
		colorRepo:    colorRepo,
		sizeRepo:     sizeRepo,
		serviceRepo:  serviceRepo,
	}
}

// ==================== Categories ====================

func (s *catalogService) ListCategories(page, limit int, search string) ([]model.Category, int64, error) {
	return s.categoryRepo.List(page, limit, search)
}

func (s *catalogService) ActiveCategories() ([]model.Category, error) {
	return s.categoryRepo.FindActive()
}

func (s *catalogService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageID:     req.ImageID,
		Active:      true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, req CategoryRequest) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	if req.Slug != "" {
		category.Slug = req.Slug
	} else if category.Slug == "" {
		category.Slug = Slugify(req.Name)
	}
	category.Description = req.Description
	category.ImageID = req.ImageID
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

// ==================== Materials ====================

func (s *catalogService) ListMaterials(page, limit int, search string) ([]model.Material, int64, error) {
	return s.materialRepo.List(page, limit, search)
}

func (s *catalogService) CreateMaterial(req MaterialRequest) (*model.Material, error) {
	material := &model.Material{Name: req.Name, Description: req.Description}
	if err := s.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) UpdateMaterial(id uint, req MaterialRequest) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}

	material.Name = req.Name
	material.Description = req.Description
	if err := s.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) DeleteMaterial(id uint) error {
	if _, err := s.materialRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	return s.materialRepo.Delete(id)
}

// ==================== Colors ====================

func (s *catalogService) ListColors(page, limit int, search string) ([]model.Color, int64, error) {
	return s.colorRepo.List(page, limit, search)
}

func (s *catalogService) CreateColor(req ColorRequest) (*model.Color, error) {
	color := &model.Color{Name: req.Name}
	if req.Custom != nil {
		color.Custom = *req.Custom
	}
	if err := s.colorRepo.Create(color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *catalogService) UpdateColor(id uint, req ColorRequest) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}

	color.Name = req.Name
	if req.Custom != nil {
		color.Custom = *req.Custom
	}
	if err := s.colorRepo.Update(color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *catalogService) DeleteColor(id uint) error {
	if _, err := s.colorRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColorNotFound
		}
		return err
	}
	return s.colorRepo.Delete(id)
}

// ==================== Sizes ====================

func (s *catalogService) ListSizes(page, limit int, search string) ([]model.Size, int64, error) {
	return s.sizeRepo.List(page, limit, search)
}

func (s *catalogService) CreateSize(req SizeRequest) (*model.Size, error) {
	size := &model.Size{
		Name:        req.Name,
		Description: req.Description,
		Available:   true,
	}
	if req.PriceModifier != nil {
		size.PriceModifier = *req.PriceModifier
	}
	if req.Available != nil {
		size.Available = *req.Available
	}
	if err := s.sizeRepo.Create(size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *catalogService) UpdateSize(id uint, req SizeRequest) (*model.Size, error) {
	size, err := s.sizeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}

	size.Name = req.Name
	size.Description = req.Description
	if req.PriceModifier != nil {
		size.PriceModifier = *req.PriceModifier
	}
	if req.Available != nil {
		size.Available = *req.Available
	}
	if err := s.sizeRepo.Update(size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *catalogService) DeleteSize(id uint) error {
	if _, err := s.sizeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSizeNotFound
		}
		return err
	}
	return s.sizeRepo.Delete(id)
}

// ==================== Additional services ====================

func (s *catalogService) ListAdditionalServices(page, limit int, search string) ([]model.AdditionalService, int64, error) {
	return s.serviceRepo.List(page, limit, search)
}

func (s *catalogService) CreateAdditionalService(req AdditionalServiceRequest) (*model.AdditionalService, error) {
	service := &model.AdditionalService{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if err := s.serviceRepo.Create(service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) UpdateAdditionalService(id uint, req AdditionalServiceRequest) (*model.AdditionalService, error) {
	service, err := s.serviceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	service.Name = req.Name
	service.Description = req.Description
	if req.Price != nil {
		service.Price = *req.Price
	}
	if err := s.serviceRepo.Update(service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) DeleteAdditionalService(id uint) error {
	if _, err := s.serviceRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return s.serviceRepo.Delete(id)
}

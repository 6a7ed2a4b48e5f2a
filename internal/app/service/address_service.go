package service

import (
	"errors"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRequest struct {
	Label        string `json:"label"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	IsDefault    bool   `json:"is_default"`
}

type AddressService interface {
	ListForUser(userID uint) ([]model.Address, error)
	Create(userID uint, req AddressRequest) (*model.Address, error)
	Update(userID, addressID uint, req AddressRequest) (*model.Address, error)
	Delete(userID, addressID uint) error
	SetDefault(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) ListForUser(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) Create(userID uint, req AddressRequest) (*model.Address, error) {
	address := &model.Address{
		UserID:       userID,
		Label:        req.Label,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}
	if address.Country == "" {
		address.Country = "Polska"
	}

	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	if address.IsDefault {
		if err := s.addressRepo.SetDefault(userID, address.ID); err != nil {
			return nil, err
		}
	}
	return address, nil
}

func (s *addressService) Update(userID, addressID uint, req AddressRequest) (*model.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = req.Label
	address.FirstName = req.FirstName
	address.LastName = req.LastName
	address.Company = req.Company
	address.AddressLine1 = req.AddressLine1
	address.AddressLine2 = req.AddressLine2
	address.City = req.City
	address.PostalCode = req.PostalCode
	if req.Country != "" {
		address.Country = req.Country
	}
	address.Phone = req.Phone

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	if req.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *addressService) Delete(userID, addressID uint) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(addressID)
}

func (s *addressService) SetDefault(userID, addressID uint) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.SetDefault(userID, addressID)
}

func (s *addressService) ownedAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

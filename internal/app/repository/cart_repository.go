package repository

import (
	"errors"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindOrCreateSession(sessionID string) (*model.CartSession, error)
	FindSession(sessionID string) (*model.CartSession, error)
	FindSessionByUserID(userID uint) (*model.CartSession, error)
	AttachUser(session *model.CartSession, userID uint) error
	CreateItem(item *model.CartItem) error
	CreateItemWithServices(item *model.CartItem, services []model.AdditionalService) error
	FindItem(sessionPK, itemID uint) (*model.CartItem, error)
	UpdateItem(item *model.CartItem) error
	DeleteItem(item *model.CartItem) error
	DeleteItems(sessionPK uint) error
	ClearSession(session *model.CartSession) error
	SetDiscount(session *model.CartSession, discountID *uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) preloadSession(query *gorm.DB) *gorm.DB {
	return query.
		Preload("AppliedDiscount").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Images").
		Preload("Items.Variant").
		Preload("Items.Variant.Color").
		Preload("Items.Variant.Images").
		Preload("Items.Size").
		Preload("Items.Services")
}

func (r *cartRepository) FindOrCreateSession(sessionID string) (*model.CartSession, error) {
	session, err := r.FindSession(sessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.CartSession{SessionID: sessionID}
	if err := r.db.Create(created).Error; err != nil {
		logger.Error("Failed to create cart session", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return created, nil
}

func (r *cartRepository) FindSession(sessionID string) (*model.CartSession, error) {
	var session model.CartSession
	err := r.preloadSession(r.db).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *cartRepository) FindSessionByUserID(userID uint) (*model.CartSession, error) {
	var session model.CartSession
	err := r.preloadSession(r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *cartRepository) AttachUser(session *model.CartSession, userID uint) error {
	session.UserID = &userID
	return r.db.Model(session).Update("user_id", userID).Error
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	return r.db.Create(item).Error
}

// CreateItemWithServices writes the line and its service links in one
// transaction so a failed link insert never leaves a serviceless line behind.
func (r *cartRepository) CreateItemWithServices(item *model.CartItem, services []model.AdditionalService) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if len(services) == 0 {
			return nil
		}
		return tx.Model(item).Association("Services").Replace(services)
	})
}

func (r *cartRepository) FindItem(sessionPK, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.
		Preload("Product").
		Preload("Size").
		Preload("Services").
		Where("id = ? AND cart_session_id = ?", itemID, sessionPK).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepository) DeleteItem(item *model.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(item).Association("Services").Clear(); err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

func deleteSessionItems(tx *gorm.DB, sessionPK uint) error {
	var items []model.CartItem
	if err := tx.Where("cart_session_id = ?", sessionPK).Find(&items).Error; err != nil {
		return err
	}
	for i := range items {
		if err := tx.Model(&items[i]).Association("Services").Clear(); err != nil {
			return err
		}
	}
	return tx.Where("cart_session_id = ?", sessionPK).Delete(&model.CartItem{}).Error
}

func (r *cartRepository) DeleteItems(sessionPK uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteSessionItems(tx, sessionPK)
	})
}

// ClearSession empties the cart and drops the applied discount atomically. The
// in-memory session is only updated once the transaction commits.
func (r *cartRepository) ClearSession(session *model.CartSession) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteSessionItems(tx, session.ID); err != nil {
			return err
		}
		return tx.Model(session).Update("applied_discount_id", nil).Error
	})
	if err != nil {
		return err
	}
	session.AppliedDiscountID = nil
	return nil
}

func (r *cartRepository) SetDiscount(session *model.CartSession, discountID *uint) error {
	session.AppliedDiscountID = discountID
	return r.db.Model(session).Update("applied_discount_id", discountID).Error
}

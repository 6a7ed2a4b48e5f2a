package service

import (
	"errors"
	"testing"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSessionID = "11111111-1111-1111-1111-111111111111"

func setupCartServiceTest(t *testing.T) (CartService, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	sizeRepo := repository.NewSizeRepository(testDB)
	serviceRepo := repository.NewAdditionalServiceRepository(testDB)
	discountRepo := repository.NewDiscountRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, sizeRepo, serviceRepo, discountRepo)

	category := &model.Category{Name: "Bluzy", Slug: "bluzy", Active: true}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Bluza Fluffy",
		Price:      100.00,
		CategoryID: category.ID,
		Active:     true,
	}
	testDB.Create(product)

	return cartService, product, testDB
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart, err := cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Equal(t, testSessionID, cart.SessionID)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Equal(t, 0.0, cart.Subtotal)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartService_AddItem_Totals(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 200.00, cart.Subtotal)
	assert.Equal(t, 200.00, cart.TotalPrice)
}

func TestCartService_AddItem_SizeModifier(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	size := &model.Size{Name: "XL", PriceModifier: 15.00, Available: true}
	testDB.Create(size)

	cart, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
		SizeID:    &size.ID,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 115.00, cart.Items[0].PricePerItem)
	assert.Equal(t, 115.00, cart.Subtotal)
}

func TestCartService_AddItem_ServicesPerLine(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	svc := &model.AdditionalService{Name: "Haft imienia", Price: 20.00}
	testDB.Create(svc)
	require.NoError(t, testDB.Model(product).Association("AdditionalServices").Append(svc))

	// Service price is added once per line, not per unit
	cart, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID:  product.ID,
		ServiceIDs: []uint{svc.ID},
		Quantity:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 320.00, cart.Subtotal) // 3 * 100 + 20
}

func TestCartService_AddItem_ServiceNotOffered(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	svc := &model.AdditionalService{Name: "Kaptur", Price: 10.00}
	testDB.Create(svc)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID:  product.ID,
		ServiceIDs: []uint{svc.ID},
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestCartService_AddItem_InvalidVariant(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	// Variant belonging to a different product
	otherProduct := &model.Product{
		Name:       "Czapka",
		Price:      50.00,
		CategoryID: product.CategoryID,
		Active:     true,
	}
	testDB.Create(otherProduct)
	color := &model.Color{Name: "Czarny"}
	testDB.Create(color)
	variant := &model.ProductVariant{ProductID: otherProduct.ID, ColorID: color.ID, Name: "Czarna"}
	testDB.Create(variant)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
		VariantID: &variant.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCartService_AddItem_QuantityBounds(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  100,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  -1,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Zero defaults to one
	cart, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_AddItem_MergesIdenticalLines(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	cart, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = cartService.UpdateItemQuantity(testSessionID, itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 500.00, cart.TotalPrice)

	_, err = cartService.UpdateItemQuantity(testSessionID, itemID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Failed update leaves the stored quantity unchanged
	cart, err = cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err = cartService.RemoveItem(testSessionID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)

	_, err = cartService.RemoveItem(testSessionID, 9999)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ApplyDiscount_Percentage(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code:          "FLUFFY10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		Active:        true,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := cartService.ApplyDiscount(testSessionID, "FLUFFY10")
	require.NoError(t, err)
	assert.Equal(t, 100.00, cart.Subtotal)
	assert.Equal(t, 10.00, cart.DiscountAmount)
	assert.Equal(t, 90.00, cart.TotalPrice)
}

func TestCartService_ApplyDiscount_NormalizesCode(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})
	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := cartService.ApplyDiscount(testSessionID, "  fluffy10 ")
	require.NoError(t, err)
	require.NotNil(t, cart.AppliedDiscount)
	assert.Equal(t, "FLUFFY10", cart.AppliedDiscount.Code)
	assert.Equal(t, 90.00, cart.TotalPrice)
}

func TestCartService_ApplyDiscount_FixedCappedAtSubtotal(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code:          "MEGA500",
		DiscountType:  model.DiscountFixedAmount,
		DiscountValue: 500,
		Active:        true,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := cartService.ApplyDiscount(testSessionID, "MEGA500")
	require.NoError(t, err)
	assert.Equal(t, 100.00, cart.DiscountAmount)
	assert.Equal(t, 0.00, cart.TotalPrice)
}

func TestCartService_ApplyDiscount_ReplacesPrevious(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code: "FIRST10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})
	testDB.Create(&model.DiscountCode{
		Code: "SECOND20", DiscountType: model.DiscountPercentage, DiscountValue: 20, Active: true,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = cartService.ApplyDiscount(testSessionID, "FIRST10")
	require.NoError(t, err)

	cart, err := cartService.ApplyDiscount(testSessionID, "SECOND20")
	require.NoError(t, err)
	require.NotNil(t, cart.AppliedDiscount)
	assert.Equal(t, "SECOND20", cart.AppliedDiscount.Code)
	assert.Equal(t, 20.00, cart.DiscountAmount)
}

func TestCartService_ApplyDiscount_Rejections(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	past := time.Now().Add(-time.Hour)
	maxUses := 1
	testDB.Create(&model.DiscountCode{
		Code: "EXPIRED", DiscountType: model.DiscountPercentage, DiscountValue: 10,
		Active: true, ExpiresAt: &past,
	})
	testDB.Create(&model.DiscountCode{
		Code: "USEDUP", DiscountType: model.DiscountPercentage, DiscountValue: 10,
		Active: true, MaxUses: &maxUses, UsedCount: 1,
	})
	testDB.Create(&model.DiscountCode{
		Code: "BIGCART", DiscountType: model.DiscountPercentage, DiscountValue: 10,
		Active: true, MinOrderValue: 500,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = cartService.ApplyDiscount(testSessionID, "NOPE")
	assert.ErrorIs(t, err, ErrDiscountNotFound)

	_, err = cartService.ApplyDiscount(testSessionID, "EXPIRED")
	assert.ErrorIs(t, err, ErrDiscountNotUsable)

	_, err = cartService.ApplyDiscount(testSessionID, "USEDUP")
	assert.ErrorIs(t, err, ErrDiscountNotUsable)

	_, err = cartService.ApplyDiscount(testSessionID, "BIGCART")
	assert.ErrorIs(t, err, ErrDiscountMinValue)

	// Failed applications never touch the cart
	cart, err := cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Nil(t, cart.AppliedDiscount)
	assert.Equal(t, 0.00, cart.DiscountAmount)
}

func TestCartService_RemoveDiscount(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.ApplyDiscount(testSessionID, "FLUFFY10")
	require.NoError(t, err)

	cart, err := cartService.RemoveDiscount(testSessionID)
	require.NoError(t, err)
	assert.Nil(t, cart.AppliedDiscount)
	assert.Equal(t, 100.00, cart.TotalPrice)
}

func TestCartService_Clear(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := cartService.Clear(testSessionID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0.00, cart.TotalPrice)
}

func TestCartService_AddItem_FailedServiceWriteRollsBack(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	svc := &model.AdditionalService{Name: "Haft imienia", Price: 20.00}
	testDB.Create(svc)
	require.NoError(t, testDB.Model(product).Association("AdditionalServices").Append(svc))

	// Break the service-link insert so the whole line write must roll back
	require.NoError(t, testDB.Callback().Create().Before("gorm:create").Register("fail_cart_item_services", func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_item_services" {
			tx.AddError(errors.New("write failed"))
		}
	}))

	_, err := cartService.AddItem(testSessionID, AddItemRequest{
		ProductID:  product.ID,
		ServiceIDs: []uint{svc.ID},
		Quantity:   2,
	})
	require.Error(t, err)

	var count int64
	testDB.Model(&model.CartItem{}).Count(&count)
	assert.Equal(t, int64(0), count)

	cart, err := cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0.0, cart.Subtotal)
}

func TestCartService_Clear_FailedDiscountResetRollsBack(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	testDB.Create(&model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})
	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = cartService.ApplyDiscount(testSessionID, "FLUFFY10")
	require.NoError(t, err)

	// Break the discount reset; the earlier item deletes must roll back too
	require.NoError(t, testDB.Callback().Update().Before("gorm:update").Register("fail_cart_sessions", func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_sessions" {
			tx.AddError(errors.New("write failed"))
		}
	}))

	_, err = cartService.Clear(testSessionID)
	require.Error(t, err)

	cart, err := cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	require.NotNil(t, cart.AppliedDiscount)
	assert.Equal(t, "FLUFFY10", cart.AppliedDiscount.Code)
	assert.Equal(t, 180.00, cart.TotalPrice)
}

func TestCartService_AdoptSession(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, cartService.AdoptSession(testSessionID, 42))

	var session model.CartSession
	require.NoError(t, testDB.Where("session_id = ?", testSessionID).First(&session).Error)
	require.NotNil(t, session.UserID)
	assert.Equal(t, uint(42), *session.UserID)

	// A different user cannot take over the session
	require.NoError(t, cartService.AdoptSession(testSessionID, 77))
	require.NoError(t, testDB.Where("session_id = ?", testSessionID).First(&session).Error)
	assert.Equal(t, uint(42), *session.UserID)
}

func TestCartService_RoundingToCents(t *testing.T) {
	cartService, _, testDB := setupCartServiceTest(t)

	category := &model.Category{Name: "Czapki", Slug: "czapki", Active: true}
	testDB.Create(category)
	product := &model.Product{
		Name:       "Czapka zimowa",
		Price:      33.33,
		CategoryID: category.ID,
		Active:     true,
	}
	testDB.Create(product)

	testDB.Create(&model.DiscountCode{
		Code: "THIRD", DiscountType: model.DiscountPercentage, DiscountValue: 33, Active: true,
	})

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	cart, err := cartService.ApplyDiscount(testSessionID, "THIRD")
	require.NoError(t, err)
	assert.Equal(t, 99.99, cart.Subtotal)
	assert.Equal(t, 33.00, cart.DiscountAmount) // 32.9967 rounded
	assert.Equal(t, 66.99, cart.TotalPrice)
}

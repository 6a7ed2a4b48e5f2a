package service

import (
	"testing"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, CartService, *model.Product, *gorm.DB) {
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
	orderRepo := repository.NewOrderRepository(testDB)

	cartService := NewCartService(cartRepo, productRepo, sizeRepo, serviceRepo, discountRepo)
	orderService := NewOrderService(orderRepo, cartRepo, discountRepo)

	category := &model.Category{Name: "Bluzy", Slug: "bluzy", Active: true}
	testDB.Create(category)
	product := &model.Product{
		Name:       "Bluza Fluffy",
		Price:      100.00,
		CategoryID: category.ID,
		Active:     true,
	}
	testDB.Create(product)

	return orderService, cartService, product, testDB
}

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		Email: "anna@example.com",
		ShippingAddress: CheckoutAddress{
			FirstName:    "Anna",
			LastName:     "Nowak",
			AddressLine1: "ul. Polna 5",
			City:         "Warszawa",
			PostalCode:   "00-001",
		},
		PaymentMethod: "transfer",
	}
}

func TestOrderService_Checkout_Guest(t *testing.T) {
	orderService, cartService, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	order, err := orderService.Checkout(testSessionID, nil, validCheckout())
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
	require.NotNil(t, order.PublicHash)
	assert.NotEmpty(t, *order.PublicHash)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 200.00, order.Subtotal)
	assert.Equal(t, 200.00, order.TotalPrice)
	assert.Equal(t, "Polska", order.ShippingAddress.Country)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Bluza Fluffy", order.Items[0].ProductName)

	// Cart is emptied after the order commits
	cart, err := cartService.GetCart(testSessionID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestOrderService_Checkout_Authenticated(t *testing.T) {
	orderService, cartService, product, testDB := setupOrderServiceTest(t)

	user := &model.User{Email: "anna@example.com", PasswordHash: "hash", Role: model.RoleClient}
	testDB.Create(user)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := orderService.Checkout(testSessionID, &user.ID, validCheckout())
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)
	assert.Nil(t, order.PublicHash)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orderService, _, _, _ := setupOrderServiceTest(t)

	_, err := orderService.Checkout(testSessionID, nil, validCheckout())
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestOrderService_Checkout_IncompleteAddress(t *testing.T) {
	orderService, cartService, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.ShippingAddress.City = ""
	_, err = orderService.Checkout(testSessionID, nil, req)
	assert.ErrorIs(t, err, ErrMissingAddress)

	req = validCheckout()
	req.Email = "not-an-email"
	_, err = orderService.Checkout(testSessionID, nil, req)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestOrderService_Checkout_NIP(t *testing.T) {
	orderService, cartService, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.RequiresInvoice = true
	req.NIP = "123-456-789"
	_, err = orderService.Checkout(testSessionID, nil, req)
	assert.ErrorIs(t, err, ErrInvalidNIP)

	req.NIP = "123-456-78-90"
	order, err := orderService.Checkout(testSessionID, nil, req)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", order.NIP)
	assert.True(t, order.RequiresInvoice)
}

func TestOrderService_Checkout_DiscountUsage(t *testing.T) {
	orderService, cartService, product, testDB := setupOrderServiceTest(t)

	discount := &model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	}
	testDB.Create(discount)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.ApplyDiscount(testSessionID, "FLUFFY10")
	require.NoError(t, err)

	order, err := orderService.Checkout(testSessionID, nil, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "FLUFFY10", order.DiscountCode)
	assert.Equal(t, 10.00, order.DiscountAmount)
	assert.Equal(t, 90.00, order.TotalPrice)

	var reloaded model.DiscountCode
	require.NoError(t, testDB.First(&reloaded, discount.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestOrderService_Checkout_DiscountNoLongerUsable(t *testing.T) {
	orderService, cartService, product, testDB := setupOrderServiceTest(t)

	discount := &model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	}
	testDB.Create(discount)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.ApplyDiscount(testSessionID, "FLUFFY10")
	require.NoError(t, err)

	// Deactivated between apply and checkout
	require.NoError(t, testDB.Model(discount).Update("active", false).Error)

	_, err = orderService.Checkout(testSessionID, nil, validCheckout())
	assert.ErrorIs(t, err, ErrDiscountNotUsable)
}

func TestOrderService_GetOrderByHash(t *testing.T) {
	orderService, cartService, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := orderService.Checkout(testSessionID, nil, validCheckout())
	require.NoError(t, err)

	found, err := orderService.GetOrderByHash(*order.PublicHash)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = orderService.GetOrderByHash("no-such-hash")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetOrderByID_OwnerOnly(t *testing.T) {
	orderService, cartService, product, testDB := setupOrderServiceTest(t)

	user := &model.User{Email: "anna@example.com", PasswordHash: "hash", Role: model.RoleClient}
	testDB.Create(user)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := orderService.Checkout(testSessionID, &user.ID, validCheckout())
	require.NoError(t, err)

	found, err := orderService.GetOrderByID(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = orderService.GetOrderByID(order.ID, user.ID+1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderService, cartService, product, _ := setupOrderServiceTest(t)

	_, err := cartService.AddItem(testSessionID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := orderService.Checkout(testSessionID, nil, validCheckout())
	require.NoError(t, err)

	updated, err := orderService.UpdateStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	_, err = orderService.UpdateStatus(order.ID, model.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = orderService.UpdateStatus(9999, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const cartTestSessionID = "22222222-2222-2222-2222-222222222222"

func setupCartControllerTest(t *testing.T) (*gin.Engine, *model.Product, *gorm.DB) {
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
	cartService := service.NewCartService(cartRepo, productRepo, sizeRepo, serviceRepo, discountRepo)
	cartController := NewCartController(cartService)

	category := &model.Category{Name: "Bluzy", Slug: "bluzy", Active: true}
	testDB.Create(category)
	product := &model.Product{
		Name:       "Bluza Fluffy",
		Price:      100.00,
		CategoryID: category.ID,
		Active:     true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	cart := router.Group("/api/cart", middleware.CartSession())
	{
		cart.GET("", cartController.Get)
		cart.DELETE("", cartController.Clear)
		cart.POST("/items", cartController.AddItem)
		cart.PUT("/items/:id", cartController.UpdateItem)
		cart.DELETE("/items/:id", cartController.RemoveItem)
		cart.POST("/discount", cartController.ApplyDiscount)
		cart.DELETE("/discount", cartController.RemoveDiscount)
	}

	return router, product, testDB
}

func cartRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionIDHeader, cartTestSessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartController_Get_IssuesSessionID(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	// No session header: the middleware assigns one and echoes it back
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.SessionIDHeader))
}

func TestCartController_AddItem_Success(t *testing.T) {
	router, product, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, cartTestSessionID, cart.SessionID)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 200.00, cart.TotalPrice)
}

func TestCartController_AddItem_UnknownProduct(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": 9999,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestCartController_AddItem_InvalidQuantity(t *testing.T) {
	router, product, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between 1 and 99")
}

func TestCartController_UpdateItem(t *testing.T) {
	router, product, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	itemID := cart.Items[0].ID

	w = cartRequest(t, router, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", itemID), gin.H{
		"quantity": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 5, cart.TotalItems)
}

func TestCartController_ApplyDiscount(t *testing.T) {
	router, product, testDB := setupCartControllerTest(t)

	testDB.Create(&model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = cartRequest(t, router, http.MethodPost, "/api/cart/discount", gin.H{"code": "FLUFFY10"})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 10.00, cart.DiscountAmount)
	assert.Equal(t, 90.00, cart.TotalPrice)

	w = cartRequest(t, router, http.MethodPost, "/api/cart/discount", gin.H{"code": "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_Clear(t *testing.T) {
	router, product, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = cartRequest(t, router, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0.00, cart.TotalPrice)
}

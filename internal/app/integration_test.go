package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/controller"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mapTokenStore struct {
	tokens map[string]uint
}

func (s *mapTokenStore) Save(_ context.Context, tokenID string, userID uint, _ time.Duration) error {
	s.tokens[tokenID] = userID
	return nil
}

func (s *mapTokenStore) Consume(_ context.Context, tokenID string) (bool, error) {
	if _, ok := s.tokens[tokenID]; !ok {
		return false, nil
	}
	delete(s.tokens, tokenID)
	return true, nil
}

func (s *mapTokenStore) Revoke(_ context.Context, tokenID string) error {
	delete(s.tokens, tokenID)
	return nil
}

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	materialRepo := repository.NewMaterialRepository(testDB)
	colorRepo := repository.NewColorRepository(testDB)
	sizeRepo := repository.NewSizeRepository(testDB)
	serviceRepo := repository.NewAdditionalServiceRepository(testDB)
	imageRepo := repository.NewImageRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	discountRepo := repository.NewDiscountRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	jwtCfg := config.JWTConfig{
		Secret:             "integration-test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	authService := service.NewAuthService(userRepo, &mapTokenStore{tokens: make(map[string]uint)}, jwtCfg)
	catalogService := service.NewCatalogService(categoryRepo, materialRepo, colorRepo, sizeRepo, serviceRepo)
	productService := service.NewProductService(productRepo, variantRepo, categoryRepo, imageRepo, serviceRepo)
	cartService := service.NewCartService(cartRepo, productRepo, sizeRepo, serviceRepo, discountRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, discountRepo)

	authController := controller.NewAuthController(authService, cartService)
	productController := controller.NewProductController(productService, catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)

	authMiddleware := middleware.NewAuthMiddleware(jwtCfg.Secret)

	router := gin.New()
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", middleware.CartSession(), authController.Register)
		auth.POST("/login", middleware.CartSession(), authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}
	router.GET("/api/products", productController.List)
	router.GET("/api/products/:id", productController.Get)

	cart := router.Group("/api/cart", middleware.CartSession())
	{
		cart.GET("", cartController.Get)
		cart.POST("/items", cartController.AddItem)
		cart.POST("/discount", cartController.ApplyDiscount)
	}

	orders := router.Group("/api/orders")
	{
		orders.POST("", middleware.CartSession(), authMiddleware.OptionalAuthenticate(), orderController.Checkout)
		orders.GET("/hash/:hash", orderController.GetByHash)
		orders.GET("", authMiddleware.Authenticate(), orderController.History)
	}

	return &TestServer{Router: router, DB: testDB}
}

func (ts *TestServer) seedCatalog(t *testing.T) *model.Product {
	category := &model.Category{Name: "Bluzy", Slug: "bluzy", Active: true}
	ts.DB.Create(category)
	product := &model.Product{
		Name:       "Bluza Fluffy",
		Price:      100.00,
		CategoryID: category.ID,
		Active:     true,
	}
	ts.DB.Create(product)
	ts.DB.Create(&model.DiscountCode{
		Code: "FLUFFY10", DiscountType: model.DiscountPercentage, DiscountValue: 10, Active: true,
	})
	return product
}

func (ts *TestServer) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

// A first-time visitor browses, fills a cart, applies a code, checks out
// without an account and can look the order up by its public hash.
func TestGuestPurchaseFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	product := ts.seedCatalog(t)

	// Browse
	w := ts.request(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bluza Fluffy")

	// First cart touch assigns the session
	w = ts.request(t, http.MethodGet, "/api/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := w.Header().Get(middleware.SessionIDHeader)
	require.NotEmpty(t, sessionID)
	session := map[string]string{middleware.SessionIDHeader: sessionID}

	// Add to cart, apply the discount
	w = ts.request(t, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   2,
	}, session)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.request(t, http.MethodPost, "/api/cart/discount", gin.H{"code": "FLUFFY10"}, session)
	require.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 200.00, cart.Subtotal)
	assert.Equal(t, 180.00, cart.TotalPrice)

	// Checkout as guest
	w = ts.request(t, http.MethodPost, "/api/orders", gin.H{
		"email": "gosc@example.com",
		"shipping_address": gin.H{
			"first_name":    "Jan",
			"last_name":     "Kowalski",
			"address_line1": "ul. Polna 5",
			"city":          "Warszawa",
			"postal_code":   "00-001",
		},
		"payment_method": "transfer",
	}, session)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkout struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	require.NotNil(t, checkout.Order.PublicHash)
	assert.Equal(t, 180.00, checkout.Order.TotalPrice)
	assert.Equal(t, "FLUFFY10", checkout.Order.DiscountCode)

	// Cart is emptied
	w = ts.request(t, http.MethodGet, "/api/cart", nil, session)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 0)

	// Guest lookup by hash, no credentials
	w = ts.request(t, http.MethodGet, "/api/orders/hash/"+*checkout.Order.PublicHash, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gosc@example.com")
}

// A registered customer's guest cart follows them through login, and the
// order lands in their history instead of getting a public hash.
func TestAuthenticatedPurchaseFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	product := ts.seedCatalog(t)

	// Fill a guest cart first
	w := ts.request(t, http.MethodGet, "/api/cart", nil, nil)
	sessionID := w.Header().Get(middleware.SessionIDHeader)
	session := map[string]string{middleware.SessionIDHeader: sessionID}

	w = ts.request(t, http.MethodPost, "/api/cart/items", gin.H{
		"product_id": product.ID,
		"quantity":   1,
	}, session)
	require.Equal(t, http.StatusCreated, w.Code)

	// Register with the session header so the cart is adopted
	w = ts.request(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "anna@example.com",
		"password": "sekretne-haslo",
	}, session)
	require.Equal(t, http.StatusCreated, w.Code)

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.AccessToken)

	authed := map[string]string{
		middleware.SessionIDHeader: sessionID,
		"Authorization":            "Bearer " + auth.AccessToken,
	}

	w = ts.request(t, http.MethodPost, "/api/orders", gin.H{
		"email": "anna@example.com",
		"shipping_address": gin.H{
			"first_name":    "Anna",
			"last_name":     "Nowak",
			"address_line1": "ul. Polna 5",
			"city":          "Warszawa",
			"postal_code":   "00-001",
		},
		"payment_method": "transfer",
	}, authed)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkout struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	assert.Nil(t, checkout.Order.PublicHash)
	require.NotNil(t, checkout.Order.UserID)

	// Order shows up in history
	w = ts.request(t, http.MethodGet, "/api/orders", nil, authed)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Orders []model.Order `json:"orders"`
		Total  int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Equal(t, int64(1), history.Total)
	assert.Equal(t, checkout.Order.ID, history.Orders[0].ID)
}

// An expired or foreign session ID on checkout means an empty cart
func TestCheckoutWithEmptySession(t *testing.T) {
	ts := setupIntegrationTest(t)
	ts.seedCatalog(t)

	w := ts.request(t, http.MethodPost, "/api/orders", gin.H{
		"email": "gosc@example.com",
		"shipping_address": gin.H{
			"first_name":    "Jan",
			"last_name":     "Kowalski",
			"address_line1": "ul. Polna 5",
			"city":          "Warszawa",
			"postal_code":   "00-001",
		},
	}, map[string]string{middleware.SessionIDHeader: "55555555-5555-5555-5555-555555555555"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

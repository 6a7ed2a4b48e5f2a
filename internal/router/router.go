package router

import (
	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/controller"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
)

type Router struct {
	authController          *controller.AuthController
	addressController       *controller.AddressController
	productController       *controller.ProductController
	reviewController        *controller.ReviewController
	cartController          *controller.CartController
	orderController         *controller.OrderController
	adminCatalogController  *controller.AdminCatalogController
	adminProductController  *controller.AdminProductController
	adminDiscountController *controller.AdminDiscountController
	adminUserController     *controller.AdminUserController
	adminOrderController    *controller.AdminOrderController
	adminReviewController   *controller.AdminReviewController
	uploadController        *controller.UploadController
	authMiddleware          *middleware.AuthMiddleware
	config                  *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	addressController *controller.AddressController,
	productController *controller.ProductController,
	reviewController *controller.ReviewController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	adminCatalogController *controller.AdminCatalogController,
	adminProductController *controller.AdminProductController,
	adminDiscountController *controller.AdminDiscountController,
	adminUserController *controller.AdminUserController,
	adminOrderController *controller.AdminOrderController,
	adminReviewController *controller.AdminReviewController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:          authController,
		addressController:       addressController,
		productController:       productController,
		reviewController:        reviewController,
		cartController:          cartController,
		orderController:         orderController,
		adminCatalogController:  adminCatalogController,
		adminProductController:  adminProductController,
		adminDiscountController: adminDiscountController,
		adminUserController:     adminUserController,
		adminOrderController:    adminOrderController,
		adminReviewController:   adminReviewController,
		uploadController:        uploadController,
		authMiddleware:          authMiddleware,
		config:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "notsofluffy API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.CartSession(), r.authController.Register)
			auth.POST("/login", middleware.CartSession(), r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		addresses := api.Group("/addresses", r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.List)
			addresses.POST("", r.addressController.Create)
			addresses.PUT("/:id", r.addressController.Update)
			addresses.DELETE("/:id", r.addressController.Delete)
			addresses.POST("/:id/default", r.addressController.SetDefault)
		}

		// Public storefront
		api.GET("/products", r.productController.List)
		api.GET("/products/:id", r.productController.Get)
		api.GET("/categories", r.productController.Categories)
		api.GET("/sizes", r.productController.Sizes)
		api.GET("/reviews", r.reviewController.List)
		api.POST("/reviews", r.reviewController.Submit)

		cart := api.Group("/cart", middleware.CartSession())
		{
			cart.GET("", r.cartController.Get)
			cart.DELETE("", r.cartController.Clear)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:id", r.cartController.UpdateItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.POST("/discount", r.cartController.ApplyDiscount)
			cart.DELETE("/discount", r.cartController.RemoveDiscount)
		}

		orders := api.Group("/orders")
		{
			// Checkout works for guests; auth is optional but recognized
			orders.POST("", middleware.CartSession(), r.authMiddleware.OptionalAuthenticate(), r.orderController.Checkout)
			orders.GET("/hash/:hash", r.orderController.GetByHash)
			orders.GET("", r.authMiddleware.Authenticate(), r.orderController.History)
			orders.GET("/:id", r.authMiddleware.Authenticate(), r.orderController.Get)
		}

		admin := api.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("admin"),
		)
		{
			categories := admin.Group("/categories")
			{
				categories.GET("", r.adminCatalogController.ListCategories)
				categories.POST("", r.adminCatalogController.CreateCategory)
				categories.PUT("/:id", r.adminCatalogController.UpdateCategory)
				categories.DELETE("/:id", r.adminCatalogController.DeleteCategory)
			}

			materials := admin.Group("/materials")
			{
				materials.GET("", r.adminCatalogController.ListMaterials)
				materials.POST("", r.adminCatalogController.CreateMaterial)
				materials.PUT("/:id", r.adminCatalogController.UpdateMaterial)
				materials.DELETE("/:id", r.adminCatalogController.DeleteMaterial)
			}

			colors := admin.Group("/colors")
			{
				colors.GET("", r.adminCatalogController.ListColors)
				colors.POST("", r.adminCatalogController.CreateColor)
				colors.PUT("/:id", r.adminCatalogController.UpdateColor)
				colors.DELETE("/:id", r.adminCatalogController.DeleteColor)
			}

			sizes := admin.Group("/sizes")
			{
				sizes.GET("", r.adminCatalogController.ListSizes)
				sizes.POST("", r.adminCatalogController.CreateSize)
				sizes.PUT("/:id", r.adminCatalogController.UpdateSize)
				sizes.DELETE("/:id", r.adminCatalogController.DeleteSize)
			}

			services := admin.Group("/additional-services")
			{
				services.GET("", r.adminCatalogController.ListAdditionalServices)
				services.POST("", r.adminCatalogController.CreateAdditionalService)
				services.PUT("/:id", r.adminCatalogController.UpdateAdditionalService)
				services.DELETE("/:id", r.adminCatalogController.DeleteAdditionalService)
			}

			products := admin.Group("/products")
			{
				products.GET("", r.adminProductController.List)
				products.GET("/:id", r.adminProductController.Get)
				products.POST("", r.adminProductController.Create)
				products.PUT("/:id", r.adminProductController.Update)
				products.DELETE("/:id", r.adminProductController.Delete)
			}

			variants := admin.Group("/product-variants")
			{
				variants.GET("", r.adminProductController.ListVariants)
				variants.GET("/:id", r.adminProductController.GetVariant)
				variants.POST("", r.adminProductController.CreateVariant)
				variants.PUT("/:id", r.adminProductController.UpdateVariant)
				variants.DELETE("/:id", r.adminProductController.DeleteVariant)
			}

			discounts := admin.Group("/discount-codes")
			{
				discounts.GET("", r.adminDiscountController.List)
				discounts.GET("/:id", r.adminDiscountController.Get)
				discounts.POST("", r.adminDiscountController.Create)
				discounts.PUT("/:id", r.adminDiscountController.Update)
				discounts.DELETE("/:id", r.adminDiscountController.Delete)
			}

			users := admin.Group("/users")
			{
				users.GET("", r.adminUserController.List)
				users.GET("/:id", r.adminUserController.Get)
				users.POST("", r.adminUserController.Create)
				users.PUT("/:id", r.adminUserController.Update)
				users.DELETE("/:id", r.adminUserController.Delete)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", r.adminOrderController.List)
				orders.GET("/:id", r.adminOrderController.Get)
				orders.PATCH("/:id/status", r.adminOrderController.UpdateStatus)
			}

			reviews := admin.Group("/client-reviews")
			{
				reviews.GET("", r.adminReviewController.List)
				reviews.GET("/:id", r.adminReviewController.Get)
				reviews.POST("", r.adminReviewController.Create)
				reviews.PUT("/:id", r.adminReviewController.Update)
				reviews.DELETE("/:id", r.adminReviewController.Delete)
			}

			images := admin.Group("/images")
			{
				images.GET("", r.uploadController.List)
				images.POST("/upload", r.uploadController.Upload)
				images.DELETE("/:id", r.uploadController.Delete)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Session-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

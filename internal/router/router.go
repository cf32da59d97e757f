package router

import (
	"github.com/arteliving/arteliving-backend/config"
	"github.com/arteliving/arteliving-backend/internal/app/controller"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/arteliving/arteliving-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	attributeController *controller.AttributeController
	categoryController  *controller.CategoryController
	bannerController    *controller.BannerController
	cartController      *controller.CartController
	wishlistController  *controller.WishlistController
	orderController     *controller.OrderController
	reportController    *controller.ReportController
	settingController   *controller.SettingController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	hub                 *websocket.Hub
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	attributeController *controller.AttributeController,
	categoryController *controller.CategoryController,
	bannerController *controller.BannerController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	orderController *controller.OrderController,
	reportController *controller.ReportController,
	settingController *controller.SettingController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	hub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		attributeController: attributeController,
		categoryController:  categoryController,
		bannerController:    bannerController,
		cartController:      cartController,
		wishlistController:  wishlistController,
		orderController:     orderController,
		reportController:    reportController,
		settingController:   settingController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		hub:                 hub,
		config:              cfg,
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
			"message": "ARTE LIVING API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/filters", r.productController.GetFilters)
			products.GET("/slug/:slug", r.productController.GetProductBySlug)
			products.GET("/:id", r.productController.GetProduct)
		}

		attributes := v1.Group("/attributes")
		{
			attributes.GET("", r.attributeController.ListKinds)
			attributes.GET("/:kind", r.attributeController.ListValues)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:slug", r.categoryController.GetCategory)
		}

		v1.GET("/banners", r.bannerController.ListActiveBanners)

		settings := v1.Group("/settings")
		{
			settings.GET("", r.settingController.GetSettings)
			settings.GET("/:key", r.settingController.GetSetting)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.PUT("/:id", r.cartController.UpdateItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/toggle", r.wishlistController.Toggle)
			wishlist.DELETE("/:id", r.wishlistController.Remove)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.ListMyOrders)
			orders.GET("/:id", r.orderController.GetMyOrder)
			orders.POST("", r.orderController.CreateOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/products", r.productController.CreateSimpleProduct)
			admin.POST("/products/variants", r.productController.CreateVariantProduct)
			admin.GET("/products/sku-suggestion", r.productController.SuggestSKU)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.POST("/products/:id/variants", r.productController.AddVariant)
			admin.PUT("/products/:id/variants/:variantId", r.productController.UpdateVariant)
			admin.DELETE("/products/:id/variants/:variantId", r.productController.DeleteVariant)
			admin.POST("/products/:id/variants/:variantId/duplicate", r.productController.DuplicateVariant)
			admin.PUT("/products/:id/variants/:variantId/default", r.productController.SetDefaultVariant)

			admin.POST("/products/:id/discount", r.productController.ApplyDiscount)
			admin.DELETE("/products/:id/discount", r.productController.RemoveDiscount)

			admin.POST("/attributes/:kind", r.attributeController.CreateValue)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)
			admin.POST("/categories/:id/subcategories", r.categoryController.AddSubcategory)
			admin.DELETE("/subcategories/:id", r.categoryController.DeleteSubcategory)

			admin.GET("/banners", r.bannerController.ListBanners)
			admin.POST("/banners", r.bannerController.CreateBanner)
			admin.PUT("/banners/:id", r.bannerController.UpdateBanner)
			admin.DELETE("/banners/:id", r.bannerController.DeleteBanner)

			admin.GET("/orders", r.orderController.ListOrders)
			admin.GET("/orders/feed", websocket.ServeFeed(r.hub))
			admin.GET("/orders/:id", r.orderController.GetOrder)
			admin.PUT("/orders/:id/status", r.orderController.UpdateStatus)

			admin.GET("/reports/revenue", r.reportController.Revenue)
			admin.GET("/reports/revenue/export", r.reportController.ExportRevenue)
			admin.GET("/reports/snapshots", r.reportController.Snapshots)
			admin.POST("/reports/best-sellers/recompute", r.reportController.RecomputeBestSellers)

			admin.PUT("/settings/:key", r.settingController.UpdateSetting)

			admin.POST("/uploads/presigned-url", r.uploadController.GeneratePresignedURL)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/handlers"
	"github.com/javajoker/perfume-store/internal/middleware"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/session"
	"github.com/javajoker/perfume-store/internal/utils"
)

// Dependencies are the long-lived collaborators built in main.
type Dependencies struct {
	Sessions   *session.Manager
	Notifier   services.OrderNotifier
	Storage    *services.StorageService
	Audit      *middleware.AuditLogger
	RateLimits *middleware.RateLimits
}

func Initialize(db *gorm.DB, cfg *config.Config, deps Dependencies) *gin.Engine {
	// Initialize services
	accountService := services.NewAccountService(db, cfg)
	catalogService := services.NewCatalogService(db, cfg)
	favoriteService := services.NewFavoriteService(db)
	orderService := services.NewOrderService(db, cfg, deps.Notifier)
	paymentService := services.NewPaymentService(cfg, orderService)
	exportService := services.NewExportService()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, deps.Sessions, cfg.Session)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService)
	adminHandler := handlers.NewAdminHandler(orderService, catalogService, deps.Storage, exportService, cfg)

	auth := middleware.NewAuth(deps.Sessions, cfg.Session.CookieName)
	limits := deps.RateLimits
	if limits == nil {
		limits = middleware.NewRateLimits(config.RateLimitConfig{})
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(limits.General())
	if deps.Audit != nil {
		r.Use(deps.Audit.Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", http.StatusText(http.StatusNotFound), nil)
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Account routes
		accounts := api.Group("/accounts")
		{
			accounts.GET("/isauth", auth.Optional(), accountHandler.IsAuthenticated)
			accounts.POST("/signup", limits.Auth(), accountHandler.Signup)
			accounts.POST("/login", limits.Auth(), accountHandler.Login)
			accounts.POST("/logout", auth.Required(), accountHandler.Logout)

			profile := accounts.Group("")
			profile.Use(auth.Required())
			{
				profile.GET("", accountHandler.GetProfile)
				profile.PUT("", accountHandler.UpdateProfile)
				profile.GET("/profile", accountHandler.GetProfile)
				profile.PUT("/profile", accountHandler.UpdateProfile)
				profile.PUT("/change-password", accountHandler.ChangePassword)
			}
		}

		// Catalog routes
		catalog := api.Group("")
		catalog.Use(auth.Optional())
		{
			catalog.GET("/brands", catalogHandler.ListBrands)
			catalog.GET("/groups", catalogHandler.ListGroups)
			catalog.GET("/products", catalogHandler.ListProducts)
			catalog.GET("/products/count", catalogHandler.CountProducts)
			catalog.GET("/products/:ref", catalogHandler.GetProduct)
			catalog.GET("/products/:ref/groups", catalogHandler.GetProductGroups)
		}

		// Favorite routes
		favorites := api.Group("/favorites")
		favorites.Use(auth.Required())
		{
			favorites.GET("", favoriteHandler.ListFavorites)
			favorites.POST("", favoriteHandler.CreateFavorite)
			favorites.DELETE("/:id", favoriteHandler.DeleteFavorite)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(auth.Required())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.POST("/:id/payment-intent", orderHandler.CreatePaymentIntent)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(auth.Required(), middleware.AdminRequired())
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/export", adminHandler.ExportOrders)
			admin.POST("/orders/:id/complete", adminHandler.CompleteOrder)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)

			admin.POST("/brands", adminHandler.CreateBrand)
			admin.POST("/groups", adminHandler.CreateGroup)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.POST("/products/:id/image", limits.Upload(), adminHandler.UploadProductImage)
		}
	}

	// Locally stored product images
	if !cfg.AWS.Enabled() && cfg.Storage.LocalDir != "" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	return r
}

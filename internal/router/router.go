// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/config"
	"github.com/retailnet/ordering-backend/internal/handlers"
	"github.com/retailnet/ordering-backend/internal/middleware"
	"github.com/retailnet/ordering-backend/internal/services"
	"github.com/retailnet/ordering-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(db, cfg, services.DefaultAuthHooks())
	catalogService := services.NewCatalogService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	contactService := services.NewContactService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Set token secrets
	utils.SetTokenSecrets(cfg.Auth.JWTSecret, cfg.Auth.ResetSecret, cfg.Auth.VerificationSecret)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	authRequired := middleware.AuthRequired(db, cfg)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/request-verify", authRequired, authHandler.RequestVerification)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
		}

		v1.GET("/protected-route", authRequired, authHandler.ProtectedRoute)

		// Shop routes
		shops := v1.Group("/shops")
		{
			shops.GET("", catalogHandler.GetShops)
			shops.GET("/:id/products", productHandler.GetShopProducts)
			shops.POST("", authRequired, catalogHandler.CreateShop)
			shops.POST("/import", authRequired, productHandler.ImportPriceList)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.POST("", authRequired, catalogHandler.CreateCategory)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", authRequired, productHandler.CreateProduct)
			products.POST("/info", authRequired, productHandler.UpsertProductInfo)
		}

		// Contact routes
		contacts := v1.Group("/contacts")
		contacts.Use(authRequired)
		{
			contacts.GET("", contactHandler.GetContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		// Basket and order routes
		basket := v1.Group("/basket")
		basket.Use(authRequired)
		{
			basket.GET("", orderHandler.GetBasket)
			basket.POST("/items", orderHandler.AddBasketItem)
			basket.POST("/confirm", orderHandler.ConfirmOrder)
		}

		orders := v1.Group("/orders")
		orders.Use(authRequired)
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/state", middleware.SuperuserRequired(), orderHandler.UpdateOrderState)
		}
	}

	return r
}
